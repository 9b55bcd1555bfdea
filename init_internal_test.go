package worktree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGitDirFailsIfExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "worktrees", "wt")

	require.NoError(t, createGitDir(dir))

	err := createGitDir(dir)
	assert.ErrorIs(t, err, ErrWorktreeExists)
}

func TestCheckPath(t *testing.T) {
	store := t.TempDir()
	r := &Repository{gitDir: store, commonDir: store}
	base := t.TempDir()

	assert.NoError(t, checkPath(r, filepath.Join(base, "absent")))
	assert.NoError(t, checkPath(r, base))

	require.NoError(t, os.WriteFile(filepath.Join(base, "file"), nil, 0o644))
	assert.ErrorIs(t, checkPath(r, base), ErrPathOccupied)
	assert.ErrorIs(t, checkPath(r, filepath.Join(base, "file")), ErrPathOccupied)

	assert.ErrorIs(t, checkPath(r, store), ErrPathOccupied)
	assert.ErrorIs(t, checkPath(r, filepath.Join(store, "worktrees", "x")), ErrPathOccupied)
}

func TestIsPlainName(t *testing.T) {
	for name, want := range map[string]bool{
		"testrepo-worktree": true,
		"feature_x":         true,
		"":                  false,
		".":                 false,
		"..":                false,
		"a/b":               false,
		`a\b`:               false,
	} {
		assert.Equal(t, want, isPlainName(name), name)
	}
}

func TestWorktreeNameRE(t *testing.T) {
	assert.True(t, worktreeNameRE.MatchString("worktree-new"))
	assert.True(t, worktreeNameRE.MatchString("A1"))
	assert.False(t, worktreeNameRE.MatchString("feature/x"))
	assert.False(t, worktreeNameRE.MatchString(""))
}
