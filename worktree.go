package worktree

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/go-git/go-git-worktree/internal/pathutil"
	"github.com/go-git/go-git-worktree/internal/pointer"
	"github.com/go-git/go-git-worktree/utils/trace"
)

const (
	// names for dir and files managed by worktrees.
	dotGitName    = ".git"
	worktreesDir  = "worktrees"
	commonDirFile = "commondir"
	gitDirFile    = "gitdir"
	headFile      = "HEAD"
	configFile    = "config"

	dirMode = 0o755
)

var (
	ErrWorktreeNotFound = errors.New("worktree not found")
	ErrWorktreeExists   = errors.New("worktree already exists")
	ErrPathOccupied     = errors.New("worktree path already exists and is not empty")
	ErrInvalidName      = errors.New("invalid worktree name")
	ErrNotWorktree      = errors.New("repository is not a linked worktree")

	ErrInvalidCommonDir = errors.New("worktree commondir is not valid")
	ErrInvalidGitDir    = errors.New("worktree gitdir is not valid")
	ErrInvalidParent    = errors.New("worktree parent is not valid")
)

// Worktree describes a linked worktree as found on disk. It owns nothing:
// several values may describe the same worktree, and dropping one has no
// effect on the filesystem.
type Worktree struct {
	// Name is the base name of the metadata directory.
	Name string
	// GitDir is the private metadata directory, `<CommonDir>/worktrees/<Name>`.
	GitDir string
	// CommonDir is the store shared with the main repository.
	CommonDir string
	// ParentPath is the metadata directory of the repository owning the
	// entry.
	ParentPath string
	// GitlinkPath is the `.git` file inside the working directory.
	GitlinkPath string
}

// WorkDir returns the working directory of the worktree.
func (w *Worktree) WorkDir() string {
	return filepath.Dir(w.GitlinkPath)
}

func (w *Worktree) String() string {
	return fmt.Sprintf("worktree %s (%s)", w.Name, w.WorkDir())
}

// Lookup returns the linked worktree of r called name. It fails with
// ErrWorktreeNotFound when no complete entry exists under that name. The
// pointer files are resolved but their targets are not checked; call
// Validate for that.
func Lookup(r *Repository, name string) (*Worktree, error) {
	if !isPlainName(name) {
		return nil, fmt.Errorf("%w: %q", ErrWorktreeNotFound, name)
	}

	fs := osfs.New(r.CommonDir())
	ok, err := isComplete(fs, fs.Join(worktreesDir, name))
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWorktreeNotFound, name)
	}

	gitDir := filepath.Join(r.CommonDir(), worktreesDir, name)
	wfs := osfs.New(gitDir)

	commonDir, err := pointer.Read(wfs, commonDirFile)
	if err != nil {
		return nil, fmt.Errorf("worktree %q: %w", name, err)
	}

	gitlink, err := pointer.Read(wfs, gitDirFile)
	if err != nil {
		return nil, fmt.Errorf("worktree %q: %w", name, err)
	}

	trace.General.Printf("worktree: lookup %s: gitdir=%s commondir=%s gitlink=%s", name, gitDir, commonDir, gitlink)

	return &Worktree{
		Name:        name,
		GitDir:      pathutil.Normalize(gitDir),
		CommonDir:   commonDir,
		ParentPath:  r.CommonDir(),
		GitlinkPath: gitlink,
	}, nil
}

// LookupFromRepository returns the worktree r was opened from. It fails with
// ErrNotWorktree when r is not a linked worktree.
func LookupFromRepository(r *Repository) (*Worktree, error) {
	if !r.IsWorktree() {
		return nil, ErrNotWorktree
	}

	return Lookup(r, filepath.Base(r.GitDir()))
}

func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`)
}
