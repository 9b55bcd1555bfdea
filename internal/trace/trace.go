// Package trace reads the environment variables that enable trace targets
// of the worktree library.
package trace

import (
	"os"
	"strconv"

	"github.com/go-git/go-git-worktree/utils/trace"
)

// envToTarget maps what environment variables can be used
// to enable specific trace targets.
var envToTarget = map[string]trace.Target{
	"GIT_WORKTREE_TRACE":         trace.General,
	"GIT_WORKTREE_TRACE_POINTER": trace.Pointer,
}

// ReadEnv reads the environment variables and sets the trace targets.
func ReadEnv() {
	var target trace.Target
	for k, v := range envToTarget {
		if val, _ := strconv.ParseBool(os.Getenv(k)); val {
			target |= v
		}
	}

	trace.SetTarget(target)
}
