package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/logger"
)

// ManifestName is the file LoadManifest looks for when given a directory.
const ManifestName = "jama.yml"

// Manifest represents the parsed contents of jama.yml.
type Manifest struct {
	Path    string
	Dir     string
	Name    string
	Sources []string
	Check   CheckSettings
	Log     LogSettings
}

// CheckSettings mirrors the manifest's check section.
type CheckSettings struct {
	Parallel bool
	Workers  int
}

// LogSettings mirrors the manifest's log section.
type LogSettings struct {
	Level  string
	Format string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses jama.yml from disk, returning a validated manifest.
// path may name the file or the directory holding it.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		absPath = filepath.Join(absPath, ManifestName)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()
	return ReadManifest(file, absPath)
}

// ReadManifest decodes a manifest from r. path is recorded on the result and
// anchors relative source paths.
func ReadManifest(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := raw.toManifest(path)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if len(m.Sources) == 0 {
		errs.Issues = append(errs.Issues, "sources must list at least one file")
	}
	seen := make(map[string]struct{}, len(m.Sources))
	for i, src := range m.Sources {
		if filepath.IsAbs(src) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources[%d] must be relative to the manifest (got %q)", i, src))
		}
		if _, dup := seen[src]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources[%d] repeats %q", i, src))
		}
		seen[src] = struct{}{}
	}
	if m.Check.Workers < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("check.workers must not be negative (got %d)", m.Check.Workers))
	}
	if m.Log.Level != "" {
		if _, err := logger.ParseLevel(m.Log.Level); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("log.level: %v", err))
		}
	}
	switch m.Log.Format {
	case "", "text", "json":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.format must be text or json (got %q)", m.Log.Format))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// SourcePaths returns the manifest's sources resolved against its directory.
func (m *Manifest) SourcePaths() []string {
	out := make([]string, 0, len(m.Sources))
	for _, src := range m.Sources {
		out = append(out, filepath.Join(m.Dir, filepath.FromSlash(src)))
	}
	return out
}

// RevisionPaths returns the manifest's sources relative to repoRoot, the form
// RevisionSources expects. The manifest must live inside repoRoot.
func (m *Manifest) RevisionPaths(repoRoot string) ([]string, error) {
	root, err := resolvedDir(repoRoot)
	if err != nil {
		return nil, err
	}
	dir, err := resolvedDir(m.Dir)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s is not inside %s: %w", m.Path, repoRoot, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, fmt.Errorf("manifest: %s is not inside %s", m.Path, repoRoot)
	}
	out := make([]string, 0, len(m.Sources))
	for _, src := range m.Sources {
		out = append(out, path.Join(rel, filepath.ToSlash(src)))
	}
	return out, nil
}

func resolvedDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

type manifestFile struct {
	Name    string        `yaml:"name"`
	Sources stringList    `yaml:"sources"`
	Check   *checkSection `yaml:"check"`
	Log     *logSection   `yaml:"log"`
}

type checkSection struct {
	Parallel bool `yaml:"parallel"`
	Workers  int  `yaml:"workers"`
}

type logSection struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	m := &Manifest{
		Path:    path,
		Dir:     filepath.Dir(path),
		Name:    strings.TrimSpace(mf.Name),
		Sources: mf.Sources.normalized(),
	}
	if mf.Check != nil {
		m.Check = CheckSettings{Parallel: mf.Check.Parallel, Workers: mf.Check.Workers}
	}
	if mf.Log != nil {
		m.Log = LogSettings{
			Level:  strings.TrimSpace(mf.Log.Level),
			Format: strings.ToLower(strings.TrimSpace(mf.Log.Format)),
		}
	}
	return m
}

type stringList []string

func (l stringList) normalized() []string {
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, filepath.ToSlash(filepath.Clean(item)))
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}
