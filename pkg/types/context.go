// Package types holds the runtime context shared by all modules during a
// single render.
package types

import (
	"os"
	"path/filepath"
	"sync"

	git "github.com/go-git/go-git/v5"

	"github.com/arthur-debert/promptline/pkg/claude"
	"github.com/arthur-debert/promptline/pkg/config"
)

// Context combines the stdin payload with the loaded configuration and
// memoizes the expensive lookups (repository handle, directory listing)
// so concurrent modules share one result. All methods are safe for
// concurrent use.
type Context struct {
	Input  *claude.Input
	Config *config.Config

	// CurrentDir is the effective working directory for this render.
	CurrentDir string

	repoOnce sync.Once
	repo     *git.Repository
	repoRoot string

	dirOnce     sync.Once
	dirContents []string
}

// NewContext builds a render context from a parsed payload.
func NewContext(input *claude.Input, cfg *config.Config) *Context {
	return &Context{
		Input:      input,
		Config:     cfg,
		CurrentDir: input.CurrentDir(),
	}
}

// Repo returns the enclosing git repository, opening it at most once.
// The second return is false when CurrentDir is not inside a repository.
func (c *Context) Repo() (*git.Repository, bool) {
	c.repoOnce.Do(func() {
		repo, err := git.PlainOpenWithOptions(c.CurrentDir, &git.PlainOpenOptions{
			DetectDotGit: true,
		})
		if err != nil {
			return
		}
		c.repo = repo
		if wt, err := repo.Worktree(); err == nil {
			c.repoRoot = wt.Filesystem.Root()
		}
	})
	return c.repo, c.repo != nil
}

// RepoRoot returns the repository's worktree root, or "" outside a
// repository (or for a bare one).
func (c *Context) RepoRoot() string {
	c.Repo()
	return c.repoRoot
}

// DirContents returns the entry names of CurrentDir, listed at most once.
// A missing or unreadable directory yields an empty slice.
func (c *Context) DirContents() []string {
	c.dirOnce.Do(func() {
		entries, err := os.ReadDir(c.CurrentDir)
		if err != nil {
			return
		}
		c.dirContents = make([]string, 0, len(entries))
		for _, e := range entries {
			c.dirContents = append(c.dirContents, e.Name())
		}
	})
	return c.dirContents
}

// InRepo reports whether CurrentDir is inside a git worktree.
func (c *Context) InRepo() bool {
	_, ok := c.Repo()
	return ok
}

// RelativeToRepo returns CurrentDir relative to the repository root,
// keeping the root directory's own name as the first element. Returns
// ok=false outside a repository.
func (c *Context) RelativeToRepo() (string, bool) {
	root := c.RepoRoot()
	if root == "" {
		return "", false
	}
	rel, err := filepath.Rel(root, c.CurrentDir)
	if err != nil {
		return "", false
	}
	base := filepath.Base(root)
	if rel == "." {
		return base, true
	}
	return filepath.Join(base, rel), true
}
