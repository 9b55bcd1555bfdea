package pathutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading `~` or `~user` in a user supplied path with
// the matching home directory. Unlike the rest of the package it may consult
// the OS, and it is only applied to paths given by callers, never to pointer
// file contents.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	prefix, rest := path, ""
	if i := strings.IndexAny(path, "/"+string(filepath.Separator)); i >= 0 {
		prefix, rest = path[:i], path[i+1:]
	}

	var home string
	if prefix == "~" {
		h, err := os.UserHomeDir()
		if err != nil {
			return path, err
		}

		home = h
	} else {
		u, err := user.Lookup(prefix[1:])
		if err != nil {
			return path, err
		}

		home = u.HomeDir
	}

	return filepath.Join(home, rest), nil
}
