package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-git/go-git-worktree/utils/trace"
)

func TestReadEnv(t *testing.T) {
	t.Cleanup(func() { trace.SetTarget(0) })

	t.Setenv("GIT_WORKTREE_TRACE", "true")
	t.Setenv("GIT_WORKTREE_TRACE_POINTER", "0")
	ReadEnv()
	assert.True(t, trace.General.Enabled())
	assert.False(t, trace.Pointer.Enabled())

	t.Setenv("GIT_WORKTREE_TRACE", "")
	t.Setenv("GIT_WORKTREE_TRACE_POINTER", "1")
	ReadEnv()
	assert.False(t, trace.General.Enabled())
	assert.True(t, trace.Pointer.Enabled())
}
