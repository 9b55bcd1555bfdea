package worktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/go-git/go-git-worktree/internal/pathutil"
	"github.com/go-git/go-git-worktree/internal/pointer"
	"github.com/go-git/go-git-worktree/utils/trace"
)

var worktreeNameRE = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)

// commonDirTarget is written to the `commondir` file of every new entry;
// it is relative to `<commondir>/worktrees/<name>`.
var commonDirTarget = filepath.Join("..", "..")

// Init creates the linked worktree name of r with its working directory at
// path, on a new branch also called name. The branch starts at the commit
// HEAD resolves to, unless WithCommit says otherwise.
//
// Init fails with ErrWorktreeExists if a complete entry called name already
// exists and with ErrPathOccupied if path is a file or a non-empty
// directory; in both cases nothing is created. Once the metadata directory
// has been created, a failing step leaves what was already written in place.
func Init(r *Repository, name, path string, opts ...Option) (*Worktree, error) {
	if !worktreeNameRE.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	o := newOptions(opts)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	path, err := pathutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	if path, err = filepath.Abs(path); err != nil {
		return nil, err
	}

	commonFS := osfs.New(r.CommonDir())
	exists, err := isComplete(commonFS, commonFS.Join(worktreesDir, name))
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, fmt.Errorf("%w: %q", ErrWorktreeExists, name)
	}

	if err := checkPath(r, path); err != nil {
		return nil, err
	}

	commit, err := startCommit(r, o)
	if err != nil {
		return nil, err
	}

	gitDir := filepath.Join(r.CommonDir(), worktreesDir, name)
	gitlink := filepath.Join(path, dotGitName)

	if err := createGitDir(gitDir); err != nil {
		return nil, err
	}

	trace.General.Printf("worktree: created %s", gitDir)

	gitFS := osfs.New(gitDir)
	if err := pointer.Write(gitFS, commonDirFile, commonDirTarget); err != nil {
		return nil, err
	}

	if err := pointer.Write(gitFS, gitDirFile, gitlink); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(path, dirMode); err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	if err := pointer.WriteGitlink(osfs.New(path), dotGitName, gitDir); err != nil {
		return nil, err
	}

	branch, err := o.branch(r, name, commit)
	if err != nil {
		return nil, fmt.Errorf("creating branch %q: %w", name, err)
	}

	head := "ref: " + branch.Name().String() + "\n"
	if err := util.WriteFile(gitFS, headFile, []byte(head), 0o644); err != nil {
		return nil, fmt.Errorf("writing HEAD of %s: %w", gitDir, err)
	}

	wr, err := o.open(gitDir, r.CommonDir(), path)
	if err != nil {
		return nil, err
	}

	if err := o.checkout(wr, commit); err != nil {
		return nil, fmt.Errorf("checking out %s into %s: %w", commit, path, err)
	}

	trace.General.Printf("worktree: %s ready at %s on %s", name, path, branch.Name())
	return Lookup(r, name)
}

// checkPath fails with ErrPathOccupied unless path is absent or an empty
// directory outside the common store.
func checkPath(r *Repository, path string) error {
	if pathutil.IsWithin(r.CommonDir(), path) {
		return fmt.Errorf("%w: %s is within %s", ErrPathOccupied, path, r.CommonDir())
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrPathOccupied, path)
	}

	entries, err := osfs.New(path).ReadDir("")
	if err != nil {
		return err
	}

	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrPathOccupied, path)
	}

	return nil
}

func startCommit(r *Repository, o *options) (plumbing.Hash, error) {
	commit := o.commit
	if commit.IsZero() {
		var err error
		if commit, err = r.HeadCommit(); err != nil {
			return plumbing.ZeroHash, err
		}
	}

	if _, err := r.CommitObject(commit); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("start commit %s: %w", commit, err)
	}

	return commit, nil
}

// createGitDir creates the metadata directory of a new entry. The final
// component is created with a single mkdir so two concurrent Init calls for
// the same name cannot both succeed.
func createGitDir(gitDir string) error {
	if err := os.MkdirAll(filepath.Dir(gitDir), dirMode); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(gitDir), err)
	}

	if err := os.Mkdir(gitDir, dirMode); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrWorktreeExists, gitDir)
		}

		return fmt.Errorf("creating %s: %w", gitDir, err)
	}

	return nil
}

func createBranch(r *Repository, name string, commit plumbing.Hash) (*plumbing.Reference, error) {
	refName := plumbing.NewBranchReferenceName(name)

	_, err := r.Reference(refName, false)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", git.ErrBranchExists, refName)
	case !errors.Is(err, plumbing.ErrReferenceNotFound):
		return nil, err
	}

	ref := plumbing.NewHashReference(refName, commit)
	if err := r.Storer.SetReference(ref); err != nil {
		return nil, err
	}

	return ref, nil
}

func checkout(r *Repository, commit plumbing.Hash) error {
	w, err := r.Worktree()
	if err != nil {
		return err
	}

	return w.Reset(&git.ResetOptions{
		Commit: commit,
		Mode:   git.HardReset,
	})
}
