// Package worktree discovers, validates, creates and opens the linked
// worktrees of a git repository.
//
// A repository has one main worktree (none if it is bare) and zero or more
// linked worktrees. Every linked worktree shares the objects, refs and
// config of the main repository (the common store) but has its own HEAD,
// index and checked out files. It is described by four locations kept in
// agreement by small pointer files:
//
//	<commondir>/worktrees/<name>/            private metadata directory
//	<commondir>/worktrees/<name>/commondir   points at <commondir>
//	<commondir>/worktrees/<name>/gitdir      points at <workdir>/.git
//	<workdir>/.git                           "gitdir: " + metadata directory
//
// A Worktree value is only a projection of these files. Lookup builds one,
// Validate reads the files again and reports the first disagreement, and
// Open refuses to open a worktree that does not validate, so a stale
// working directory can never write into the wrong store.
//
// Nothing in this package locks the common store. The only concurrency
// guarantee is that Init creates the metadata directory with a single
// mkdir, so two processes creating a worktree of the same name cannot both
// succeed. List hides entries that lack any of `gitdir`, `commondir` or
// `HEAD`, which covers entries whose creation is still in progress.
//
// Ref: https://github.com/git/git/blob/master/Documentation/git-worktree.adoc
package worktree
