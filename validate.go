package worktree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/go-git/go-git-worktree/internal/pathutil"
	"github.com/go-git/go-git-worktree/internal/pointer"
	"github.com/go-git/go-git-worktree/utils/trace"
)

// Validate checks that w still describes a consistent linked worktree. The
// pointer files are read again from disk and compared with the fields of w.
//
// Existence is checked first, then agreement of the pointer files, each in
// the order commondir, gitdir, parent; only the first failure is returned,
// wrapping ErrInvalidCommonDir, ErrInvalidGitDir or ErrInvalidParent.
func (w *Worktree) Validate() error {
	err := w.validate()
	if err != nil {
		trace.General.Printf("worktree: %s is not valid: %v", w.Name, err)
	}

	return err
}

func (w *Worktree) validate() error {
	if !isDir(w.CommonDir) {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidCommonDir, w.CommonDir)
	}

	if !isDir(w.GitDir) {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidGitDir, w.GitDir)
	}

	if !pathutil.IsChild(filepath.Join(w.CommonDir, worktreesDir), w.GitDir) {
		return fmt.Errorf("%w: %s is not within %s", ErrInvalidGitDir, w.GitDir, filepath.Join(w.CommonDir, worktreesDir))
	}

	fs := osfs.New(w.GitDir)

	commonDir, err := pointer.Read(fs, commonDirFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCommonDir, err)
	}

	if !pathutil.Equal(commonDir, w.CommonDir) {
		return fmt.Errorf("%w: points to %s, expected %s", ErrInvalidCommonDir, commonDir, w.CommonDir)
	}

	gitlink, err := pointer.Read(fs, gitDirFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGitDir, err)
	}

	if !pathutil.Equal(gitlink, w.GitlinkPath) {
		return fmt.Errorf("%w: points to %s, expected %s", ErrInvalidGitDir, gitlink, w.GitlinkPath)
	}

	if !isDir(filepath.Dir(gitlink)) {
		return fmt.Errorf("%w: working directory %s does not exist", ErrInvalidGitDir, filepath.Dir(gitlink))
	}

	if !isDir(w.ParentPath) {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidParent, w.ParentPath)
	}

	back, err := pointer.ReadGitlink(osfs.New(filepath.Dir(gitlink)), filepath.Base(gitlink))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParent, err)
	}

	if !pathutil.Equal(back, w.GitDir) {
		return fmt.Errorf("%w: %s points to %s, expected %s", ErrInvalidParent, gitlink, back, w.GitDir)
	}

	return nil
}

func isDir(path string) bool {
	if path == "" {
		return false
	}

	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
