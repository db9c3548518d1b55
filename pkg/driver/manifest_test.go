package driver

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestParsesSections(t *testing.T) {
	path := writeManifest(t, `
name: demo
sources:
  - src/main.jama
  - ./src/util.jama
check:
  parallel: true
  workers: 4
log:
  level: debug
  format: JSON
`)
	manifest, err := LoadManifest(filepath.Dir(path))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "demo" || manifest.Path != path {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if want := []string{"src/main.jama", "src/util.jama"}; !reflect.DeepEqual(manifest.Sources, want) {
		t.Fatalf("sources = %v, want %v", manifest.Sources, want)
	}
	if !manifest.Check.Parallel || manifest.Check.Workers != 4 {
		t.Fatalf("check = %+v", manifest.Check)
	}
	if manifest.Log.Level != "debug" || manifest.Log.Format != "json" {
		t.Fatalf("log = %+v", manifest.Log)
	}
	if got := manifest.SourcePaths()[0]; got != filepath.Join(filepath.Dir(path), "src", "main.jama") {
		t.Fatalf("source path = %s", got)
	}
}

func TestLoadManifestAcceptsSingleSource(t *testing.T) {
	manifest, err := LoadManifest(writeManifest(t, "name: one\nsources: main.jama\n"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !reflect.DeepEqual(manifest.Sources, []string{"main.jama"}) {
		t.Fatalf("sources = %v", manifest.Sources)
	}
	if manifest.Check.Parallel || manifest.Log.Format != "" {
		t.Fatalf("expected zero settings, got %+v %+v", manifest.Check, manifest.Log)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, "name: demo\nsources: a.jama\noptimize: true\n"))
	if err == nil || !strings.Contains(err.Error(), "optimize") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `
sources: [a.jama, a.jama, /abs/b.jama]
check:
  workers: -1
log:
  level: loud
  format: xml
`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	want := []string{
		"name must be provided",
		"sources[1] repeats",
		"sources[2] must be relative",
		"check.workers must not be negative",
		"log.level",
		"log.format must be text or json",
	}
	if len(verr.Issues) != len(want) {
		t.Fatalf("issues = %q", verr.Issues)
	}
	for i, prefix := range want {
		if !strings.HasPrefix(verr.Issues[i], prefix) {
			t.Fatalf("issue %d = %q, want prefix %q", i, verr.Issues[i], prefix)
		}
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, ""))
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}
