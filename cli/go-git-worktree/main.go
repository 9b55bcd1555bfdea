package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	worktree "github.com/go-git/go-git-worktree"
	envtrace "github.com/go-git/go-git-worktree/internal/trace"
	"github.com/go-git/go-git-worktree/utils/trace"
)

const (
	bin = "go-git-worktree"

	// Exit codes are defined in api-error-handling upstream:
	// https://github.com/git/git/blob/8be77c5de65442b331a28d63802c7a3b94a06c5a/Documentation/technical/api-error-handling.txt#L32-L46
	cannotStartExitCode  = 129
	generalErrorExitCode = 1
)

type globalOptions struct {
	Repository string `short:"C" long:"repository" default:"." description:"Path to the repository, or to any of its worktrees."`
	Format     string `long:"format" choice:"text" choice:"yaml" default:"text" description:"Output format."`
	Trace      bool   `long:"trace" description:"Trace pointer file and registry operations to stderr."`
}

var (
	global globalOptions

	stdout io.Writer = os.Stdout
)

func newParser() *flags.Parser {
	global = globalOptions{}

	p := flags.NewNamedParser(bin, flags.HelpFlag|flags.PassDoubleDash)
	p.AddGroup("Global Options", "", &global) // nolint: errcheck

	p.AddCommand("list", "List linked worktrees",
		"List the names of the complete linked worktrees of the repository.", &CmdList{}) // nolint: errcheck
	p.AddCommand("show", "Show a linked worktree",
		"Show the paths recorded for a linked worktree and whether they agree.", &CmdShow{}) // nolint: errcheck
	p.AddCommand("validate", "Validate a linked worktree",
		"Check the pointer files of a linked worktree against each other.", &CmdValidate{}) // nolint: errcheck
	p.AddCommand("add", "Create a linked worktree",
		"Create a linked worktree and a branch of the same name, checked out at <path>.", &CmdAdd{}) // nolint: errcheck
	p.AddCommand("open", "Open a linked worktree",
		"Validate and open a linked worktree, printing its working directory and HEAD.", &CmdOpen{}) // nolint: errcheck

	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		if global.Trace {
			trace.SetTarget(trace.General | trace.Pointer)
		}

		if cmd == nil {
			return nil
		}

		return cmd.Execute(args)
	}

	return p
}

func main() {
	envtrace.ReadEnv()

	_, err := newParser().Parse()
	if err == nil {
		return
	}

	var ferr *flags.Error
	if errors.As(err, &ferr) {
		if ferr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, ferr.Message)
			return
		}

		fmt.Fprintln(os.Stderr, ferr.Message)
		os.Exit(cannotStartExitCode)
	}

	fmt.Fprintln(os.Stderr, "ERR:", err)
	os.Exit(generalErrorExitCode)
}

func openRepository() (*worktree.Repository, error) {
	return worktree.PlainOpenWithOptions(global.Repository, &worktree.PlainOpenOptions{
		DetectDotGit: true,
	})
}
