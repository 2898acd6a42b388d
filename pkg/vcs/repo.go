// pkg/vcs/repo.go

package vcs

import (
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// FindWorkingTree walks upward from path until it finds the root of a git
// working tree. path may be a file (existing or not) or a directory. The
// second return is false when no enclosing working tree exists.
func FindWorkingTree(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	dir := abs
	if fi, statErr := os.Stat(abs); statErr != nil || !fi.IsDir() {
		// Missing files are fine: a new file's enclosing tree is its parent's.
		dir = filepath.Dir(abs)
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository: nothing to edit in place.
		return "", false
	}
	return wt.Filesystem.Root(), true
}

// openWorkingTree opens the repository rooted exactly at path.
func openWorkingTree(path string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, ErrNotAWorkingTree
	}
	if _, err := repo.Worktree(); err != nil {
		return nil, ErrNotAWorkingTree
	}
	return repo, nil
}

// hasOriginRemote reports whether the repository has a remote named origin.
func hasOriginRemote(repo *gogit.Repository) bool {
	_, err := repo.Remote("origin")
	return err == nil
}
