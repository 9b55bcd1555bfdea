package worktree

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/go-git/go-git-worktree/utils/trace"
)

// entryFiles must all be present, as regular files, for a metadata
// directory to count as a worktree.
var entryFiles = []string{gitDirFile, commonDirFile, headFile}

// List returns the sorted names of the linked worktrees registered in the
// common store of r. Entries missing any of `gitdir`, `commondir` or `HEAD`
// are skipped: they are being created or torn down. A store without a
// `worktrees` directory has no linked worktrees.
func List(r *Repository) ([]string, error) {
	fs := osfs.New(r.CommonDir())

	entries, err := fs.ReadDir(worktreesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("listing worktrees: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		ok, err := isComplete(fs, fs.Join(worktreesDir, e.Name()))
		if err != nil {
			return nil, err
		}

		if !ok {
			trace.General.Printf("worktree: skipping incomplete entry %s", e.Name())
			continue
		}

		names = append(names, e.Name())
	}

	sort.Strings(names)
	return names, nil
}

// isComplete reports whether dir, relative to fs, is a directory holding
// every entry file.
func isComplete(fs billy.Filesystem, dir string) (bool, error) {
	fi, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	if !fi.IsDir() {
		return false, nil
	}

	for _, name := range entryFiles {
		fi, err := fs.Stat(fs.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}

			return false, err
		}

		if !fi.Mode().IsRegular() {
			return false, nil
		}
	}

	return true, nil
}
