package driver

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SourceExt is the extension RevisionSources looks for when no paths are given.
const SourceExt = ".jama"

// Source is one program text and the name it is reported under.
type Source struct {
	Path string
	Text string
}

// ReadSources loads each path from disk, in order.
func ReadSources(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", p, err)
		}
		sources = append(sources, Source{Path: p, Text: string(data)})
	}
	return sources, nil
}

// Revision identifies the commit sources were read from.
type Revision struct {
	Requested string
	Commit    string
}

// RevisionSources reads sources as they exist at rev in the repository
// containing repoDir, without touching the worktree. paths are relative to
// the repository root; when empty every *.jama file in the commit is read in
// lexical order.
func RevisionSources(repoDir, rev string, paths []string) ([]Source, Revision, error) {
	rev = strings.TrimSpace(rev)
	if rev == "" {
		rev = "HEAD"
	}
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, Revision{}, fmt.Errorf("git open %s: %w", repoDir, err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, Revision{}, fmt.Errorf("resolve revision %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("load commit %s: %w", hash, err)
	}
	revision := Revision{Requested: rev, Commit: hash.String()}

	if len(paths) == 0 {
		paths, err = commitSourcePaths(commit)
		if err != nil {
			return nil, revision, err
		}
	}
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		name, err := repoPath(p)
		if err != nil {
			return nil, revision, err
		}
		file, err := commit.File(name)
		if err != nil {
			if errors.Is(err, object.ErrFileNotFound) {
				return nil, revision, fmt.Errorf("%s: not found at %s", name, rev)
			}
			return nil, revision, fmt.Errorf("%s at %s: %w", name, rev, err)
		}
		text, err := file.Contents()
		if err != nil {
			return nil, revision, fmt.Errorf("%s at %s: %w", name, rev, err)
		}
		sources = append(sources, Source{Path: name, Text: text})
	}
	return sources, revision, nil
}

// RepositoryRoot returns the worktree root of the repository containing dir.
func RepositoryRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("git open %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("git worktree %s: %w", dir, err)
	}
	return wt.Filesystem.Root(), nil
}

func commitSourcePaths(commit *object.Commit) ([]string, error) {
	files, err := commit.Files()
	if err != nil {
		return nil, err
	}
	var paths []string
	err = files.ForEach(func(f *object.File) error {
		if path.Ext(f.Name) == SourceExt {
			paths = append(paths, f.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func repoPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return "", fmt.Errorf("%s: revision paths must be relative to the repository root", p)
	}
	clean := path.Clean(filepath.ToSlash(p))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%s: path escapes the repository", p)
	}
	return clean, nil
}
