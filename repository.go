package worktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/filesystem/dotgit"

	"github.com/go-git/go-git-worktree/internal/pathutil"
	"github.com/go-git/go-git-worktree/internal/pointer"
)

var (
	// ErrRepositoryNotExists is returned by PlainOpen when path holds no
	// repository.
	ErrRepositoryNotExists = errors.New("repository does not exist")
)

// Repository is a go-git repository together with the directories it was
// opened from. For a linked worktree GitDir is `<CommonDir>/worktrees/<name>`;
// for any other repository GitDir and CommonDir are the same directory.
type Repository struct {
	*git.Repository

	gitDir    string
	commonDir string
	workDir   string
}

// PlainOpenOptions describes how opening a plain repository should be
// performed.
type PlainOpenOptions struct {
	// DetectDotGit makes PlainOpenWithOptions look for a repository in the
	// parent directories of path when path itself holds none.
	DetectDotGit bool
}

// PlainOpen opens the repository at path. path may be a working directory
// holding a `.git` directory, a linked working directory holding a `.git`
// gitlink file, or a metadata directory (as in a bare repository). A leading
// `~` is expanded to the home directory. Parent directories are not searched;
// use PlainOpenWithOptions with DetectDotGit for that.
func PlainOpen(path string) (*Repository, error) {
	return PlainOpenWithOptions(path, &PlainOpenOptions{})
}

// PlainOpenWithOptions opens the repository at path with the given options.
func PlainOpenWithOptions(path string, o *PlainOpenOptions) (*Repository, error) {
	if o == nil {
		o = &PlainOpenOptions{}
	}

	path, err := pathutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	if path, err = filepath.Abs(path); err != nil {
		return nil, err
	}

	gitDir, workDir, err := discover(path)
	for dir := path; err != nil && o.DetectDotGit && errors.Is(err, ErrRepositoryNotExists); {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
		var derr error
		if gitDir, workDir, derr = discover(dir); derr == nil || !errors.Is(derr, ErrRepositoryNotExists) {
			err = derr
		}
	}

	if err != nil {
		return nil, err
	}

	commonDir, err := readCommonDir(gitDir)
	if err != nil {
		return nil, err
	}

	return openRepository(gitDir, commonDir, workDir)
}

func discover(path string) (gitDir, workDir string, err error) {
	dotGit := filepath.Join(path, dotGitName)
	fi, err := os.Stat(dotGit)
	switch {
	case err == nil && fi.IsDir():
		return dotGit, path, nil
	case err == nil:
		gitDir, err := pointer.ReadGitlink(osfs.New(path), dotGitName)
		if err != nil {
			return "", "", err
		}

		return gitDir, path, nil
	case !os.IsNotExist(err):
		return "", "", err
	}

	if _, err := os.Stat(filepath.Join(path, headFile)); err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("%w: %s", ErrRepositoryNotExists, path)
		}

		return "", "", err
	}

	workDir, err = metadataWorkDir(path)
	return path, workDir, err
}

// metadataWorkDir returns the working directory of a repository opened
// through its metadata directory: the directory holding the gitlink for a
// linked worktree entry, the parent of a non-bare `.git` directory, and
// nothing for a bare repository.
func metadataWorkDir(gitDir string) (string, error) {
	fs := osfs.New(gitDir)
	gitlink, err := pointer.Read(fs, gitDirFile)
	switch {
	case err == nil:
		return filepath.Dir(gitlink), nil
	case !errors.Is(err, pointer.ErrNotFound):
		return "", err
	}

	if filepath.Base(gitDir) != dotGitName {
		return "", nil
	}

	f, err := fs.Open(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	defer f.Close()

	cfg, err := config.ReadConfig(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", fs.Join(gitDir, configFile), err)
	}

	if cfg.Core.IsBare {
		return "", nil
	}

	return filepath.Dir(gitDir), nil
}

// readCommonDir returns the store shared by gitDir: the target of its
// `commondir` pointer when present, gitDir itself otherwise.
func readCommonDir(gitDir string) (string, error) {
	commonDir, err := pointer.Read(osfs.New(gitDir), commonDirFile)
	if errors.Is(err, pointer.ErrNotFound) {
		return pathutil.Normalize(gitDir), nil
	}

	return commonDir, err
}

// openRepository is the default OpenFunc. The storage is built over the
// private metadata directory merged with the shared store, so objects, refs
// and config come from commonDir while HEAD and index come from gitDir.
func openRepository(gitDir, commonDir, workDir string) (*Repository, error) {
	gitDir = pathutil.Normalize(gitDir)
	commonDir = pathutil.Normalize(commonDir)
	workDir = pathutil.Normalize(workDir)

	var fs billy.Filesystem = osfs.New(gitDir)
	if !pathutil.Equal(gitDir, commonDir) {
		fs = dotgit.NewRepositoryFilesystem(fs, osfs.New(commonDir))
	}

	s := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())

	var wt billy.Filesystem
	if workDir != "" {
		wt = osfs.New(workDir)
	}

	r, err := git.Open(s, wt)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", gitDir, err)
	}

	return &Repository{
		Repository: r,
		gitDir:     gitDir,
		commonDir:  commonDir,
		workDir:    workDir,
	}, nil
}

// GitDir returns the repository's own metadata directory.
func (r *Repository) GitDir() string { return r.gitDir }

// CommonDir returns the directory holding objects, refs and config.
func (r *Repository) CommonDir() string { return r.commonDir }

// WorkDir returns the working directory, empty for a bare repository.
func (r *Repository) WorkDir() string { return r.workDir }

// IsWorktree reports whether r was opened from a linked worktree.
func (r *Repository) IsWorktree() bool {
	return !pathutil.Equal(r.gitDir, r.commonDir)
}

// IsBare reports whether r has no working directory of its own.
func (r *Repository) IsBare() bool {
	return r.workDir == ""
}

// HeadCommit returns the commit HEAD resolves to.
func (r *Repository) HeadCommit() (plumbing.Hash, error) {
	ref, err := r.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving HEAD: %w", err)
	}

	return ref.Hash(), nil
}
