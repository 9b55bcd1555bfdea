// Package pathutil normalizes and compares the paths stored in worktree
// pointer files. None of its functions touch the filesystem.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize removes `.` and `..` segments, redundant and trailing separators
// from path. An empty path normalizes to the empty string.
func Normalize(path string) string {
	if path == "" {
		return ""
	}

	return filepath.Clean(path)
}

// Equal reports whether a and b name the same location once normalized.
// Symlinks are not followed.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Resolve returns target as an absolute, normalized path. A relative target
// is interpreted against baseDir, the directory holding the pointer file it
// was read from.
func Resolve(baseDir, target string) string {
	if filepath.IsAbs(target) {
		return Normalize(target)
	}

	return Normalize(filepath.Join(baseDir, target))
}

// IsChild reports whether path is a direct child of dir.
func IsChild(dir, path string) bool {
	path = Normalize(path)
	if path == "" {
		return false
	}

	return Equal(filepath.Dir(path), dir) && !Equal(path, dir)
}

// IsWithin reports whether path equals dir or lies anywhere below it.
func IsWithin(dir, path string) bool {
	rel, err := filepath.Rel(Normalize(dir), Normalize(path))
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
