package worktree

import (
	"errors"

	"github.com/go-git/go-git/v5/plumbing"
)

// OpenFunc opens the repository whose private metadata lives in gitDir and
// whose objects, refs and config live in commonDir. workDir is empty for a
// repository without a working directory.
type OpenFunc func(gitDir, commonDir, workDir string) (*Repository, error)

// BranchFunc creates the branch name pointing at commit in r.
type BranchFunc func(r *Repository, name string, commit plumbing.Hash) (*plumbing.Reference, error)

// CheckoutFunc materializes commit into the working directory of r.
type CheckoutFunc func(r *Repository, commit plumbing.Hash) error

var errOpenerNil = errors.New("repository opener cannot be nil")

type options struct {
	commit   plumbing.Hash
	open     OpenFunc
	branch   BranchFunc
	checkout CheckoutFunc
}

func newOptions(opts []Option) *options {
	o := &options{
		open:     openRepository,
		branch:   createBranch,
		checkout: checkout,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *options) Validate() error {
	if o.open == nil {
		return errOpenerNil
	}

	if o.branch == nil {
		return errors.New("branch creator cannot be nil")
	}

	if o.checkout == nil {
		return errors.New("checkout cannot be nil")
	}

	return nil
}

// Option configures Init and Open. Open only honors WithOpener.
type Option func(*options)

// WithCommit makes Init start the new worktree at commit instead of the
// commit HEAD resolves to.
func WithCommit(commit plumbing.Hash) Option {
	return func(o *options) {
		o.commit = commit
	}
}

// WithOpener replaces the function used to open repositories.
func WithOpener(fn OpenFunc) Option {
	return func(o *options) {
		o.open = fn
	}
}

// WithBranchCreator replaces the function Init uses to create the branch of
// the new worktree.
func WithBranchCreator(fn BranchFunc) Option {
	return func(o *options) {
		o.branch = fn
	}
}

// WithCheckout replaces the function Init uses to populate the new working
// directory.
func WithCheckout(fn CheckoutFunc) Option {
	return func(o *options) {
		o.checkout = fn
	}
}
