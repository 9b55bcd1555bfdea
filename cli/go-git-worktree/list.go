package main

import (
	"fmt"
	"io"

	worktree "github.com/go-git/go-git-worktree"
)

type CmdList struct{}

func (c *CmdList) Execute(args []string) error {
	r, err := openRepository()
	if err != nil {
		return err
	}

	names, err := worktree.List(r)
	if err != nil {
		return err
	}

	return render(names, func(w io.Writer) error {
		for _, name := range names {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}

		return nil
	})
}
