package modules

import (
	"os/exec"
	"strings"

	"github.com/arthur-debert/promptline/pkg/style"
	"github.com/arthur-debert/promptline/pkg/types"
)

// GitBranchModule displays the current branch name, or the short commit
// SHA when HEAD is detached. When the repository can't be read in-process
// it falls back to the git binary.
type GitBranchModule struct{}

func (m *GitBranchModule) Name() string { return "git_branch" }

func (m *GitBranchModule) ShouldDisplay(ctx *types.Context) bool {
	if ctx.Config.GitBranch.Disabled {
		return false
	}
	if ctx.InRepo() {
		return true
	}
	return gitOutput(ctx.CurrentDir, "rev-parse", "--is-inside-work-tree") == "true"
}

func (m *GitBranchModule) Render(ctx *types.Context) (string, error) {
	value := m.headRef(ctx)
	if value == "" {
		value = m.headRefViaGit(ctx.CurrentDir)
	}

	cfg := ctx.Config.GitBranch
	tokens := map[string]string{
		"branch": value,
		"symbol": cfg.Symbol,
	}
	return style.Render(cfg.Format, tokens, cfg.Style), nil
}

func (m *GitBranchModule) headRef(ctx *types.Context) string {
	repo, ok := ctx.Repo()
	if !ok {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	sha := head.Hash().String()
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return sha
}

func (m *GitBranchModule) headRefViaGit(dir string) string {
	name := gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if name != "" && name != "HEAD" {
		return name
	}
	// Detached HEAD: fall back to the short SHA.
	return gitOutput(dir, "rev-parse", "--short", "HEAD")
}

// gitOutput runs git -C dir with the given args and returns trimmed
// stdout, or "" on any failure.
func gitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
