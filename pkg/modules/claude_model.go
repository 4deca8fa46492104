package modules

import (
	"strings"

	"github.com/arthur-debert/promptline/pkg/style"
	"github.com/arthur-debert/promptline/pkg/types"
)

// ClaudeModelModule displays the session's model name with an optional
// symbol prefix.
type ClaudeModelModule struct{}

func (m *ClaudeModelModule) Name() string { return "claude_model" }

func (m *ClaudeModelModule) ShouldDisplay(ctx *types.Context) bool {
	if ctx.Config.ClaudeModel.Disabled {
		return false
	}
	return strings.TrimSpace(ctx.Input.Model.DisplayName) != ""
}

func (m *ClaudeModelModule) Render(ctx *types.Context) (string, error) {
	cfg := ctx.Config.ClaudeModel
	tokens := map[string]string{
		"model":  compactModelName(ctx.Input.Model.DisplayName),
		"symbol": cfg.Symbol,
	}
	return style.Render(cfg.Format, tokens, cfg.Style), nil
}

// compactModelName removes the single space before a version number, so
// "Opus 4.1" reads "Opus4.1".
func compactModelName(name string) string {
	var out strings.Builder
	out.Grow(len(name))
	runes := []rune(name)
	for i, r := range runes {
		if r == ' ' && i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
