package main

import (
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing"

	worktree "github.com/go-git/go-git-worktree"
)

type CmdAdd struct {
	Commit string `long:"commit" description:"Start the new branch at this commit instead of HEAD."`

	Args struct {
		Name string `positional-arg-name:"name" required:"yes"`
		Path string `positional-arg-name:"path" required:"yes"`
	} `positional-args:"yes"`
}

func (c *CmdAdd) Execute(args []string) error {
	r, err := openRepository()
	if err != nil {
		return err
	}

	var opts []worktree.Option
	if c.Commit != "" {
		if !plumbing.IsHash(c.Commit) {
			return fmt.Errorf("invalid commit %q", c.Commit)
		}

		opts = append(opts, worktree.WithCommit(plumbing.NewHash(c.Commit)))
	}

	wt, err := worktree.Init(r, c.Args.Name, c.Args.Path, opts...)
	if err != nil {
		return err
	}

	info := newWorktreeInfo(wt)
	return render(info, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Preparing worktree (new branch '%s') at %s\n", info.Name, info.WorkDir)
		return err
	})
}

type CmdOpen struct {
	Args struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}

type openInfo struct {
	WorkDir string `yaml:"workdir"`
	Head    string `yaml:"head"`
	Commit  string `yaml:"commit"`
}

func (c *CmdOpen) Execute(args []string) error {
	r, err := openRepository()
	if err != nil {
		return err
	}

	wt, err := worktree.Lookup(r, c.Args.Name)
	if err != nil {
		return err
	}

	opened, err := wt.Open()
	if err != nil {
		return err
	}

	head, err := opened.Head()
	if err != nil {
		return err
	}

	info := &openInfo{
		WorkDir: opened.WorkDir(),
		Head:    head.Name().String(),
		Commit:  head.Hash().String(),
	}

	return render(info, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s %s\n", info.WorkDir, info.Commit, info.Head)
		return err
	})
}
