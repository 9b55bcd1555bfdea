package pointer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/suite"
)

type PointerSuite struct {
	suite.Suite
	dir string
	fs  billy.Filesystem
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(PointerSuite))
}

func (s *PointerSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.fs = osfs.New(s.dir)
}

func (s *PointerSuite) writeRaw(name, content string) {
	s.Require().NoError(util.WriteFile(s.fs, name, []byte(content), 0o644))
}

func (s *PointerSuite) TestReadAbsolute() {
	s.writeRaw("gitdir", "/srv/wt/.git\n")

	target, err := Read(s.fs, "gitdir")
	s.Require().NoError(err)
	s.Equal(filepath.FromSlash("/srv/wt/.git"), target)
}

func (s *PointerSuite) TestReadRelative() {
	s.Require().NoError(s.fs.MkdirAll(filepath.Join("worktrees", "wt"), 0o755))
	s.writeRaw(filepath.Join("worktrees", "wt", "commondir"), "../..\n")

	target, err := Read(s.fs, filepath.Join("worktrees", "wt", "commondir"))
	s.Require().NoError(err)
	s.Equal(s.dir, target)
}

func (s *PointerSuite) TestReadTrimsTrailingWhitespace() {
	s.writeRaw("commondir", "/srv/repo/.git/ \t\r\n")

	target, err := Read(s.fs, "commondir")
	s.Require().NoError(err)
	s.Equal(filepath.FromSlash("/srv/repo/.git"), target)
}

func (s *PointerSuite) TestReadWithoutNewline() {
	s.writeRaw("commondir", "/path/to/nonexistent/commondir")

	target, err := Read(s.fs, "commondir")
	s.Require().NoError(err)
	s.Equal(filepath.FromSlash("/path/to/nonexistent/commondir"), target)
}

func (s *PointerSuite) TestReadNotFound() {
	_, err := Read(s.fs, "commondir")
	s.ErrorIs(err, ErrNotFound)
}

func (s *PointerSuite) TestReadEmpty() {
	s.writeRaw("gitdir", "")

	_, err := Read(s.fs, "gitdir")
	s.ErrorIs(err, ErrCorrupt)

	s.writeRaw("gitdir", "\n")
	_, err = Read(s.fs, "gitdir")
	s.ErrorIs(err, ErrCorrupt)
}

func (s *PointerSuite) TestReadBinary() {
	s.writeRaw("gitdir", "/srv\x00/wt")

	_, err := Read(s.fs, "gitdir")
	s.ErrorIs(err, ErrCorrupt)

	s.writeRaw("gitdir", "\xff\xfe")
	_, err = Read(s.fs, "gitdir")
	s.ErrorIs(err, ErrCorrupt)
}

func (s *PointerSuite) TestWriteOverwrites() {
	s.writeRaw("gitdir", "/a/much/longer/previous/target/.git\n")
	s.Require().NoError(Write(s.fs, "gitdir", "/srv/wt/.git"))

	b, err := os.ReadFile(filepath.Join(s.dir, "gitdir"))
	s.Require().NoError(err)
	s.Equal("/srv/wt/.git\n", string(b))

	target, err := Read(s.fs, "gitdir")
	s.Require().NoError(err)
	s.Equal(filepath.FromSlash("/srv/wt/.git"), target)
}

func (s *PointerSuite) TestGitlinkRoundTrip() {
	s.Require().NoError(WriteGitlink(s.fs, ".git", "/srv/repo/.git/worktrees/wt"))

	b, err := os.ReadFile(filepath.Join(s.dir, ".git"))
	s.Require().NoError(err)
	s.Equal("gitdir: /srv/repo/.git/worktrees/wt\n", string(b))

	target, err := ReadGitlink(s.fs, ".git")
	s.Require().NoError(err)
	s.Equal(filepath.FromSlash("/srv/repo/.git/worktrees/wt"), target)
}

func (s *PointerSuite) TestGitlinkRelative() {
	s.writeRaw(".git", "gitdir: ../repo/.git/worktrees/wt\n")

	target, err := ReadGitlink(s.fs, ".git")
	s.Require().NoError(err)
	s.Equal(filepath.Join(filepath.Dir(s.dir), "repo", ".git", "worktrees", "wt"), target)
}

func (s *PointerSuite) TestGitlinkWithoutPrefix() {
	s.writeRaw(".git", "/path/to/nonexistent/gitdir")

	_, err := ReadGitlink(s.fs, ".git")
	s.ErrorIs(err, ErrCorrupt)

	s.writeRaw(".git", "gitdir: \n")
	_, err = ReadGitlink(s.fs, ".git")
	s.ErrorIs(err, ErrCorrupt)
}

func (s *PointerSuite) TestMemoryFilesystem() {
	fs := memfs.New()
	s.Require().NoError(Write(fs, "commondir", "../.."))

	target, err := Read(fs, "commondir")
	s.Require().NoError(err)
	s.Equal(pathOf("/"), target)
}

func pathOf(p string) string {
	return filepath.Clean(filepath.FromSlash(p))
}
