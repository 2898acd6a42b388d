// pkg/vcs/repo_test.go

package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sameDir compares paths through symlinks; t.TempDir is symlinked on some
// platforms.
func sameDir(t *testing.T, want, got string) {
	t.Helper()
	wantReal, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	gotReal, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, wantReal, gotReal)
}

func TestFindWorkingTreeAtRoot(t *testing.T) {
	dir := initRepo(t, false)

	root, found := FindWorkingTree(dir)
	require.True(t, found)
	sameDir(t, dir, root)
}

func TestFindWorkingTreeFromNestedFile(t *testing.T) {
	dir := initRepo(t, false)
	nested := filepath.Join(dir, "sections", "intro.tex")
	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0755))
	require.NoError(t, os.WriteFile(nested, []byte("\\section{Intro}\n"), 0644))

	root, found := FindWorkingTree(nested)
	require.True(t, found)
	sameDir(t, dir, root)
}

func TestFindWorkingTreeForMissingFile(t *testing.T) {
	dir := initRepo(t, false)

	// A file that does not exist yet still belongs to its parent's tree.
	root, found := FindWorkingTree(filepath.Join(dir, "new.tex"))
	require.True(t, found)
	sameDir(t, dir, root)
}

func TestFindWorkingTreeOutsideRepository(t *testing.T) {
	_, found := FindWorkingTree(t.TempDir())
	assert.False(t, found)
}

func TestOpenWorkingTree(t *testing.T) {
	dir := initRepo(t, true)

	repo, err := openWorkingTree(dir)
	require.NoError(t, err)
	assert.True(t, hasOriginRemote(repo))

	plain := initRepo(t, false)
	repo, err = openWorkingTree(plain)
	require.NoError(t, err)
	assert.False(t, hasOriginRemote(repo))
}

func TestOpenWorkingTreeRejectsNonRepository(t *testing.T) {
	_, err := openWorkingTree(t.TempDir())
	assert.Error(t, err)
}
