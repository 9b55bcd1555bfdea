// Package trace reports what the worktree package does on disk: which
// worktree entries a registry scan accepts or skips, how a lookup resolves a
// name, the first check that fails during validation, each step of creating
// a linked worktree, and every pointer file read or written.
//
// Output goes to stderr by default. A target prints nothing until it is
// switched on with SetTarget, so tracing costs a single atomic load when off.
package trace

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

var (
	out     atomic.Pointer[log.Logger]
	enabled atomic.Int32
)

func init() {
	out.Store(log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds|log.Lshortfile))
}

// Target selects a group of worktree trace messages. Targets are bit flags
// and may be combined with |.
type Target int

const (
	// General covers registry scans, lookups, validation and the steps of
	// creating or opening a linked worktree.
	General Target = 1 << iota

	// Pointer covers the commondir, gitdir and `.git` gitlink files.
	Pointer
)

var targetNames = []struct {
	t    Target
	name string
}{
	{General, "general"},
	{Pointer, "pointer"},
}

// String lists the names of the targets set in t, joined by |.
func (t Target) String() string {
	var names []string
	for _, tn := range targetNames {
		if t&tn.t != 0 {
			names = append(names, tn.name)
		}
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

// SetTarget replaces the set of enabled targets. SetTarget(0) turns tracing
// off.
func SetTarget(target Target) {
	enabled.Store(int32(target))
}

// SetLogger redirects trace output to l.
func SetLogger(l *log.Logger) {
	out.Store(l)
}

// Enabled reports whether any target in t is on.
func (t Target) Enabled() bool {
	return int32(t)&enabled.Load() != 0
}

// Print writes a message for t when t is enabled.
func (t Target) Print(args ...interface{}) {
	if t.Enabled() {
		out.Load().Output(2, fmt.Sprint(args...)) // nolint: errcheck
	}
}

// Printf writes a formatted message for t when t is enabled.
func (t Target) Printf(format string, args ...interface{}) {
	if t.Enabled() {
		out.Load().Output(2, fmt.Sprintf(format, args...)) // nolint: errcheck
	}
}
