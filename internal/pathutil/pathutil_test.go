package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type PathSuite struct{}

var _ = Suite(&PathSuite{})

func (s *PathSuite) TestNormalize(c *C) {
	c.Assert(Normalize(""), Equals, "")
	c.Assert(Normalize("/a/b/"), Equals, filepath.FromSlash("/a/b"))
	c.Assert(Normalize("/a//b/./c/../d"), Equals, filepath.FromSlash("/a/b/d"))
	c.Assert(Normalize("a/b/.."), Equals, "a")
}

func (s *PathSuite) TestEqual(c *C) {
	c.Assert(Equal("/repo/.git/", "/repo/.git"), Equals, true)
	c.Assert(Equal("/repo/.git/worktrees/../", "/repo/.git"), Equals, true)
	c.Assert(Equal("/repo/.git", "/repo/.git/worktrees"), Equals, false)
	c.Assert(Equal("/path/to/nonexistent", "/path/to/nonexistent/."), Equals, true)
}

func (s *PathSuite) TestResolve(c *C) {
	base := filepath.FromSlash("/repo/.git/worktrees/wt")

	c.Assert(Resolve(base, "../.."), Equals, filepath.FromSlash("/repo/.git"))
	c.Assert(Resolve(base, "/elsewhere/.git/"), Equals, filepath.FromSlash("/elsewhere/.git"))
	c.Assert(Resolve(base, "."), Equals, base)
}

func (s *PathSuite) TestIsChild(c *C) {
	dir := filepath.FromSlash("/repo/.git/worktrees")

	c.Assert(IsChild(dir, filepath.FromSlash("/repo/.git/worktrees/wt")), Equals, true)
	c.Assert(IsChild(dir, filepath.FromSlash("/repo/.git/worktrees/wt/")), Equals, true)
	c.Assert(IsChild(dir, filepath.FromSlash("/repo/.git/worktrees/wt/sub")), Equals, false)
	c.Assert(IsChild(dir, dir), Equals, false)
	c.Assert(IsChild(dir, filepath.FromSlash("/path/to/invalid/gitdir")), Equals, false)
	c.Assert(IsChild(dir, ""), Equals, false)
}

func (s *PathSuite) TestIsWithin(c *C) {
	dir := filepath.FromSlash("/repo")

	c.Assert(IsWithin(dir, dir), Equals, true)
	c.Assert(IsWithin(dir, filepath.FromSlash("/repo/a/b")), Equals, true)
	c.Assert(IsWithin(dir, filepath.FromSlash("/repository")), Equals, false)
	c.Assert(IsWithin(dir, filepath.FromSlash("/")), Equals, false)
}

func (s *PathSuite) TestExpandHome(c *C) {
	home, err := os.UserHomeDir()
	c.Assert(err, IsNil)

	p, err := ExpandHome("~")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, home)

	p, err = ExpandHome("~/src/wt")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, filepath.Join(home, "src", "wt"))

	p, err = ExpandHome("/srv/~wt")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, "/srv/~wt")

	p, err = ExpandHome("relative/wt")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, "relative/wt")
}
