package modules

import (
	"strconv"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/arthur-debert/promptline/pkg/config"
	"github.com/arthur-debert/promptline/pkg/style"
	"github.com/arthur-debert/promptline/pkg/types"
)

// GitStatusModule summarizes working tree and index state: per-kind
// counts plus ahead/behind divergence from the upstream branch. A fully
// clean repository renders nothing.
type GitStatusModule struct{}

func (m *GitStatusModule) Name() string { return "git_status" }

func (m *GitStatusModule) ShouldDisplay(ctx *types.Context) bool {
	if ctx.Config.GitStatus.Disabled {
		return false
	}
	return ctx.InRepo()
}

type statusCounts struct {
	conflicted  int
	stashed     int
	deleted     int
	renamed     int
	modified    int
	typechanged int
	staged      int
	untracked   int
}

func (m *GitStatusModule) Render(ctx *types.Context) (string, error) {
	repo, ok := ctx.Repo()
	if !ok {
		return "", nil
	}
	cfg := ctx.Config.GitStatus

	counts := countStatuses(repo)
	counts.stashed = stashCount(ctx.CurrentDir)
	// go-git reports a staged type change as a plain index modification,
	// so staged already includes these; only the dedicated count comes
	// from the porcelain fallback.
	counts.typechanged = typechangedCount(ctx.CurrentDir)

	allStatus := formatAllStatus(counts, cfg)
	aheadBehind := formatAheadBehind(ctx.CurrentDir, cfg)

	// A clean repository renders nothing rather than empty decoration.
	if allStatus == "" && aheadBehind == "" {
		return "", nil
	}

	tokens := map[string]string{
		"all_status":   allStatus,
		"ahead_behind": aheadBehind,
	}
	return style.Render(cfg.Format, tokens, cfg.Style), nil
}

func countStatuses(repo *git.Repository) statusCounts {
	var c statusCounts
	wt, err := repo.Worktree()
	if err != nil {
		return c
	}
	status, err := wt.Status()
	if err != nil {
		return c
	}

	for _, fs := range status {
		if fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged {
			c.conflicted++
			continue
		}
		if fs.Worktree == git.Untracked {
			c.untracked++
		}
		if fs.Worktree == git.Modified {
			c.modified++
		}
		switch fs.Staging {
		case git.Added, git.Modified:
			c.staged++
		case git.Renamed:
			c.renamed++
			c.staged++
		case git.Deleted:
			c.deleted++
			c.staged++
		}
	}
	return c
}

// stashCount reads the stash via the git binary; go-git does not expose
// the stash reflog.
func stashCount(dir string) int {
	out := gitOutput(dir, "rev-list", "--walk-reflogs", "--count", "refs/stash")
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0
	}
	return n
}

// typechangedCount reads staged type changes via the git binary; go-git
// has no status code for them.
func typechangedCount(dir string) int {
	return countTypechanged(gitOutput(dir, "status", "--porcelain"))
}

// countTypechanged counts porcelain entries whose index letter is T.
func countTypechanged(porcelain string) int {
	n := 0
	for _, line := range strings.Split(porcelain, "\n") {
		if len(line) >= 2 && line[0] == 'T' {
			n++
		}
	}
	return n
}

// formatAllStatus emits symbol+count pairs in a fixed order: conflicted,
// stashed, deleted, renamed, modified, typechanged, staged, untracked.
// Kinds with a zero count or an empty symbol are omitted.
func formatAllStatus(c statusCounts, cfg config.GitStatusConfig) string {
	var out strings.Builder
	push := func(symbol string, count int) {
		if count > 0 && symbol != "" {
			out.WriteString(symbol)
			out.WriteString(strconv.Itoa(count))
		}
	}
	push(cfg.Conflicted, c.conflicted)
	push(cfg.Stashed, c.stashed)
	push(cfg.Deleted, c.deleted)
	push(cfg.Renamed, c.renamed)
	push(cfg.Modified, c.modified)
	push(cfg.Typechanged, c.typechanged)
	push(cfg.Staged, c.staged)
	push(cfg.Untracked, c.untracked)
	return out.String()
}

// formatAheadBehind compares HEAD against its upstream. Diverged shows
// the bare diverged symbol; ahead/behind carry their commit count.
func formatAheadBehind(dir string, cfg config.GitStatusConfig) string {
	out := gitOutput(dir, "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return ""
	}
	ahead, errA := strconv.Atoi(fields[0])
	behind, errB := strconv.Atoi(fields[1])
	if errA != nil || errB != nil {
		return ""
	}

	switch {
	case ahead > 0 && behind > 0:
		return cfg.Diverged
	case ahead > 0 && cfg.Ahead != "":
		return cfg.Ahead + strconv.Itoa(ahead)
	case behind > 0 && cfg.Behind != "":
		return cfg.Behind + strconv.Itoa(behind)
	}
	return ""
}
