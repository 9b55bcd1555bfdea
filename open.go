package worktree

import (
	"github.com/go-git/go-git-worktree/utils/trace"
)

// Open validates w and opens its working directory as a repository sharing
// the common store of w. Nothing is opened when validation fails.
//
// Only WithOpener applies to Open; the other options configure Init and are
// ignored here.
func (w *Worktree) Open(opts ...Option) (*Repository, error) {
	o := newOptions(opts)
	if o.open == nil {
		return nil, errOpenerNil
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	trace.General.Printf("worktree: opening %s at %s", w.Name, w.WorkDir())
	return o.open(w.GitDir, w.CommonDir, w.WorkDir())
}
