package driver

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init: %v", err)
	}
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) write(name, contents string) {
	r.t.Helper()
	full := filepath.Join(r.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(contents), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", name, err)
	}
}

func (r *testRepo) commit(msg string, files map[string]string) plumbing.Hash {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	for name, contents := range files {
		r.write(name, contents)
		if _, err := wt.Add(name); err != nil {
			r.t.Fatalf("git add %s: %v", name, err)
		}
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "jama", Email: "jama@example.com", When: time.Now()},
	})
	if err != nil {
		r.t.Fatalf("git commit: %v", err)
	}
	return hash
}

func TestRevisionSourcesReadsCommittedContent(t *testing.T) {
	r := newTestRepo(t)
	first := r.commit("first", map[string]string{
		"src/main.jama": "Void main() { println(1); }",
		"README.md":     "not a source",
	})
	r.commit("second", map[string]string{"src/main.jama": "Void main() { println(2); }"})
	r.write("src/main.jama", "uncommitted")

	sources, rev, err := RevisionSources(r.dir, first.String(), nil)
	if err != nil {
		t.Fatalf("RevisionSources: %v", err)
	}
	if rev.Commit != first.String() {
		t.Fatalf("commit = %s, want %s", rev.Commit, first)
	}
	if len(sources) != 1 || sources[0].Path != "src/main.jama" || !strings.Contains(sources[0].Text, "println(1)") {
		t.Fatalf("unexpected sources %+v", sources)
	}

	head, _, err := RevisionSources(filepath.Join(r.dir, "src"), "", []string{"src/main.jama"})
	if err != nil {
		t.Fatalf("RevisionSources HEAD: %v", err)
	}
	if !strings.Contains(head[0].Text, "println(2)") {
		t.Fatalf("HEAD source = %q", head[0].Text)
	}
}

func TestRevisionSourcesErrors(t *testing.T) {
	r := newTestRepo(t)
	r.commit("only", map[string]string{"a.jama": "Void a() { }"})

	if _, _, err := RevisionSources(r.dir, "no-such-branch", nil); err == nil {
		t.Fatalf("expected unresolved revision error")
	}
	if _, _, err := RevisionSources(r.dir, "HEAD", []string{"missing.jama"}); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, _, err := RevisionSources(r.dir, "HEAD", []string{"../escape.jama"}); err == nil {
		t.Fatalf("expected escape error")
	}
	if _, _, err := RevisionSources(t.TempDir(), "HEAD", nil); err == nil {
		t.Fatalf("expected error outside a repository")
	}
}

func TestManifestRevisionPathsFromSubdirectory(t *testing.T) {
	r := newTestRepo(t)
	r.commit("nested", map[string]string{
		"proj/jama.yml":      "name: proj\nsources: [main.jama, lib/util.jama]\n",
		"proj/main.jama":     "Void main() { println(util()); }",
		"proj/lib/util.jama": "Int util() { return 1; }",
	})
	manifest, err := LoadManifest(filepath.Join(r.dir, "proj"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	root, err := RepositoryRoot(filepath.Join(r.dir, "proj", "lib"))
	if err != nil {
		t.Fatalf("RepositoryRoot: %v", err)
	}
	paths, err := manifest.RevisionPaths(root)
	if err != nil {
		t.Fatalf("RevisionPaths: %v", err)
	}
	want := []string{"proj/main.jama", "proj/lib/util.jama"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("RevisionPaths = %v, want %v", paths, want)
	}
	sources, _, err := RevisionSources(root, "HEAD", paths)
	if err != nil || len(sources) != 2 {
		t.Fatalf("RevisionSources = %+v, %v", sources, err)
	}

	if _, err := manifest.RevisionPaths(filepath.Join(r.dir, "proj", "lib")); err == nil {
		t.Fatalf("expected an error for a manifest outside the repository root")
	}
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.jama")
	if err := os.WriteFile(path, []byte("Void x() { }"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sources, err := ReadSources([]string{path})
	if err != nil || len(sources) != 1 || sources[0].Text != "Void x() { }" {
		t.Fatalf("ReadSources = %+v, %v", sources, err)
	}
	if _, err := ReadSources([]string{filepath.Join(dir, "missing.jama")}); err == nil {
		t.Fatalf("expected read error")
	}
}
