package modules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/promptline/pkg/style"
	"github.com/arthur-debert/promptline/pkg/types"
)

// DirectoryModule displays the current working directory, abbreviated to
// ~ under the home directory and optionally truncated relative to the
// enclosing repository.
type DirectoryModule struct{}

func (m *DirectoryModule) Name() string { return "directory" }

func (m *DirectoryModule) ShouldDisplay(ctx *types.Context) bool {
	return !ctx.Config.Directory.Disabled
}

func (m *DirectoryModule) Render(ctx *types.Context) (string, error) {
	cfg := ctx.Config.Directory
	path := m.displayPath(ctx)
	return style.Render(cfg.Format, map[string]string{"path": path}, cfg.Style), nil
}

func (m *DirectoryModule) displayPath(ctx *types.Context) string {
	cfg := ctx.Config.Directory

	if cfg.TruncateToRepo {
		if rel, ok := ctx.RelativeToRepo(); ok {
			return truncatePath(rel, cfg.TruncationLength, cfg.TruncationSymbol)
		}
	}
	return abbreviateHome(ctx.CurrentDir)
}

// truncatePath keeps at most length segments of a repo-relative path,
// always preserving the leading repository name. length < 1 is treated
// as 1.
func truncatePath(path string, length int, symbol string) string {
	segments := strings.Split(path, string(filepath.Separator))
	if length < 1 {
		length = 1
	}
	if len(segments) <= length {
		return strings.Join(segments, "/")
	}

	keepTail := length - 1
	if keepTail == 0 {
		return segments[0]
	}
	tail := segments[len(segments)-keepTail:]
	return segments[0] + "/" + symbol + strings.Join(tail, "/")
}

// abbreviateHome replaces the home directory prefix with ~.
func abbreviateHome(path string) string {
	home := os.Getenv("HOME")
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
		return "~/" + filepath.ToSlash(rel)
	}
	return path
}
