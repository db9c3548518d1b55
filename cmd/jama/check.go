package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/driver"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/logger"
)

type checkFlags struct {
	manifest  string
	repo      string
	rev       string
	parallel  bool
	workers   int
	logLevel  string
	logFormat string
	logFile   string
	set       map[string]bool
}

func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cf := &checkFlags{set: make(map[string]bool)}
	fs.StringVar(&cf.manifest, "manifest", "", "path to jama.yml (defaults to ./jama.yml when no files are given)")
	fs.StringVar(&cf.repo, "repo", "", "git repository to read sources from (requires -rev)")
	fs.StringVar(&cf.rev, "rev", "", "git revision to read sources at")
	fs.BoolVar(&cf.parallel, "parallel", false, "check method bodies concurrently")
	fs.IntVar(&cf.workers, "workers", 0, "maximum concurrent method checks (0 = GOMAXPROCS)")
	fs.StringVar(&cf.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&cf.logFormat, "log-format", "text", "log format: text or json")
	fs.StringVar(&cf.logFile, "log-file", "", "append log records to this file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) { cf.set[f.Name] = true })
	if cf.set["repo"] && !cf.set["rev"] {
		return nil, nil, fmt.Errorf("-repo requires -rev")
	}
	if cf.workers < 0 {
		return nil, nil, fmt.Errorf("-workers must not be negative")
	}
	return cf, fs.Args(), nil
}

// applyManifest fills settings the command line left unset.
func (cf *checkFlags) applyManifest(m *driver.Manifest) {
	if m == nil {
		return
	}
	if !cf.set["parallel"] {
		cf.parallel = m.Check.Parallel
	}
	if !cf.set["workers"] {
		cf.workers = m.Check.Workers
	}
	if !cf.set["log-level"] && m.Log.Level != "" {
		cf.logLevel = m.Log.Level
	}
	if !cf.set["log-format"] && m.Log.Format != "" {
		cf.logFormat = m.Log.Format
	}
}

func runCheck(args []string) int {
	cf, files, err := parseCheckFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitAccepted
		}
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	manifest, err := resolveManifest(cf.manifest, len(files) == 0)
	if errors.Is(err, errManifestNotFound) && cf.rev != "" {
		// every source file in the revision is checked
		manifest, err = nil, nil
	}
	if err != nil {
		if errors.Is(err, errManifestNotFound) {
			fmt.Fprintln(os.Stderr, "jama check: no source files given and no jama.yml found")
			printUsage()
			return exitUsage
		}
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return exitRejected
	}
	cf.applyManifest(manifest)

	level, err := logger.ParseLevel(cf.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	err = logger.Init(logger.Config{Level: level, Format: cf.logFormat, Output: os.Stderr, LogFile: cf.logFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	defer logger.Close()

	sources, label, err := loadCheckSources(cf, manifest, files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jama check: %v\n", err)
		return exitRejected
	}
	logger.Debug("Sources loaded", "files", len(sources), "from", label)

	report, err := driver.Check(sources, driver.CheckOptions{
		Parallel: cf.parallel,
		Workers:  cf.workers,
		Logger:   logger.Default(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRejected
	}
	fmt.Fprintf(os.Stdout, "ok: %s (%d %s, %d %s, %d %s)\n", label,
		report.Files, plural(report.Files, "file"),
		report.Methods, plural(report.Methods, "method"),
		report.Classes, plural(report.Classes, "class"))
	return exitAccepted
}

// resolveManifest loads an explicit manifest, or ./jama.yml when implicit is
// set and one exists.
func resolveManifest(path string, implicit bool) (*driver.Manifest, error) {
	if path != "" {
		return driver.LoadManifest(path)
	}
	if !implicit {
		return nil, nil
	}
	if _, err := os.Stat(driver.ManifestName); err != nil {
		if os.IsNotExist(err) {
			return nil, errManifestNotFound
		}
		return nil, err
	}
	return driver.LoadManifest(driver.ManifestName)
}

func loadCheckSources(cf *checkFlags, manifest *driver.Manifest, files []string) ([]driver.Source, string, error) {
	if cf.rev != "" {
		repo := cf.repo
		if repo == "" && manifest != nil && len(files) == 0 {
			repo = manifest.Dir
		}
		if repo == "" {
			repo = "."
		}
		paths := files
		if len(paths) == 0 && manifest != nil {
			root, err := driver.RepositoryRoot(repo)
			if err != nil {
				return nil, "", err
			}
			if paths, err = manifest.RevisionPaths(root); err != nil {
				return nil, "", err
			}
		}
		sources, rev, err := driver.RevisionSources(repo, cf.rev, paths)
		if err != nil {
			return nil, "", err
		}
		return sources, fmt.Sprintf("%s@%s", rev.Requested, shortHash(rev.Commit)), nil
	}

	paths := files
	label := ""
	if len(paths) == 0 && manifest != nil {
		paths = manifest.SourcePaths()
		label = manifest.Name
	}
	if label == "" {
		if len(paths) == 1 {
			label = filepath.Base(paths[0])
		} else {
			label = "program"
		}
	}
	sources, err := driver.ReadSources(paths)
	return sources, label, err
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	if word[len(word)-1] == 's' {
		return word + "es"
	}
	return word + "s"
}
