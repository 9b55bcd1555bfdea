// Package pointer reads and writes the one-line files that link a linked
// worktree to its metadata directory and to the common store: `commondir`,
// `gitdir` and the `.git` gitlink file inside the working directory.
package pointer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/go-git/go-git-worktree/internal/pathutil"
	"github.com/go-git/go-git-worktree/utils/trace"
)

// GitlinkPrefix starts the content of a gitlink file.
const GitlinkPrefix = "gitdir: "

const fileMode = 0o644

var (
	// ErrNotFound is returned when the pointer file does not exist.
	ErrNotFound = errors.New("pointer file not found")
	// ErrCorrupt is returned when the pointer file is empty or is not text.
	ErrCorrupt = errors.New("pointer file is corrupt")
)

// Read reads the pointer file name from fs and returns its target as an
// absolute, normalized path. Relative targets are resolved against the
// directory containing the file.
func Read(fs billy.Filesystem, name string) (string, error) {
	content, err := readLine(fs, name)
	if err != nil {
		return "", err
	}

	return resolve(fs, name, content), nil
}

// ReadGitlink reads a gitlink file, which must hold GitlinkPrefix followed
// by the path of a metadata directory.
func ReadGitlink(fs billy.Filesystem, name string) (string, error) {
	content, err := readLine(fs, name)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(content, GitlinkPrefix) {
		return "", fmt.Errorf("%w: %s: missing %q prefix", ErrCorrupt, fs.Join(fs.Root(), name), GitlinkPrefix)
	}

	target := strings.TrimSpace(strings.TrimPrefix(content, GitlinkPrefix))
	if target == "" {
		return "", fmt.Errorf("%w: %s: empty gitdir", ErrCorrupt, fs.Join(fs.Root(), name))
	}

	return resolve(fs, name, target), nil
}

// Write writes target followed by a newline to name, replacing any previous
// content.
func Write(fs billy.Filesystem, name, target string) error {
	return write(fs, name, target)
}

// WriteGitlink writes a gitlink file pointing at gitDir.
func WriteGitlink(fs billy.Filesystem, name, gitDir string) error {
	return write(fs, name, GitlinkPrefix+gitDir)
}

func write(fs billy.Filesystem, name, content string) error {
	trace.Pointer.Printf("pointer: write %s -> %s", fs.Join(fs.Root(), name), content)

	if err := util.WriteFile(fs, name, []byte(content+"\n"), fileMode); err != nil {
		return fmt.Errorf("writing %s: %w", fs.Join(fs.Root(), name), err)
	}

	return nil
}

func readLine(fs billy.Filesystem, name string) (string, error) {
	f, err := fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, fs.Join(fs.Root(), name))
		}

		return "", err
	}

	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorrupt, fs.Join(fs.Root(), name), err)
	}

	if !utf8.Valid(b) || bytes.IndexByte(b, 0) >= 0 {
		return "", fmt.Errorf("%w: %s: not a text file", ErrCorrupt, fs.Join(fs.Root(), name))
	}

	line, _, _ := strings.Cut(string(b), "\n")
	line = strings.TrimRight(line, " \t\r")
	if line == "" {
		return "", fmt.Errorf("%w: %s: empty", ErrCorrupt, fs.Join(fs.Root(), name))
	}

	trace.Pointer.Printf("pointer: read %s -> %s", fs.Join(fs.Root(), name), line)
	return line, nil
}

func resolve(fs billy.Filesystem, name, target string) string {
	base := filepath.Dir(fs.Join(fs.Root(), name))
	return pathutil.Resolve(base, target)
}
