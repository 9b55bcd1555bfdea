package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	worktree "github.com/go-git/go-git-worktree"
)

type worktreeInfo struct {
	Name      string `yaml:"name"`
	WorkDir   string `yaml:"workdir"`
	GitDir    string `yaml:"gitdir"`
	CommonDir string `yaml:"commondir"`
	Parent    string `yaml:"parent"`
	Gitlink   string `yaml:"gitlink"`
	Valid     bool   `yaml:"valid"`
	Error     string `yaml:"error,omitempty"`
}

func newWorktreeInfo(wt *worktree.Worktree) *worktreeInfo {
	info := &worktreeInfo{
		Name:      wt.Name,
		WorkDir:   wt.WorkDir(),
		GitDir:    wt.GitDir,
		CommonDir: wt.CommonDir,
		Parent:    wt.ParentPath,
		Gitlink:   wt.GitlinkPath,
		Valid:     true,
	}

	if err := wt.Validate(); err != nil {
		info.Valid = false
		info.Error = err.Error()
	}

	return info
}

type CmdShow struct {
	Args struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}

func (c *CmdShow) Execute(args []string) error {
	r, err := openRepository()
	if err != nil {
		return err
	}

	wt, err := worktree.Lookup(r, c.Args.Name)
	if err != nil {
		return err
	}

	info := newWorktreeInfo(wt)
	return render(info, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "name\t%s\n", info.Name)
		fmt.Fprintf(tw, "workdir\t%s\n", info.WorkDir)
		fmt.Fprintf(tw, "gitdir\t%s\n", info.GitDir)
		fmt.Fprintf(tw, "commondir\t%s\n", info.CommonDir)
		fmt.Fprintf(tw, "parent\t%s\n", info.Parent)
		fmt.Fprintf(tw, "gitlink\t%s\n", info.Gitlink)
		if info.Valid {
			fmt.Fprintln(tw, "valid\tyes")
		} else {
			fmt.Fprintf(tw, "valid\tno: %s\n", info.Error)
		}

		return tw.Flush()
	})
}

type CmdValidate struct {
	Args struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}

func (c *CmdValidate) Execute(args []string) error {
	r, err := openRepository()
	if err != nil {
		return err
	}

	wt, err := worktree.Lookup(r, c.Args.Name)
	if err != nil {
		return err
	}

	if err := wt.Validate(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "%s: ok\n", wt.Name)
	return err
}
