package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/promptline/pkg/errors"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "$directory $claude_model", cfg.Format)
	assert.Equal(t, int64(500), cfg.CommandTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout())
	assert.False(t, cfg.Debug)

	assert.Equal(t, "[$path]($style)", cfg.Directory.Format)
	assert.Equal(t, "bold cyan", cfg.Directory.Style)
	assert.Equal(t, 3, cfg.Directory.TruncationLength)
	assert.Equal(t, "…/", cfg.Directory.TruncationSymbol)
	assert.True(t, cfg.Directory.TruncateToRepo)
	assert.False(t, cfg.Directory.Disabled)

	assert.Equal(t, "[$symbol$model]($style)", cfg.ClaudeModel.Format)
	assert.Equal(t, "bold yellow", cfg.ClaudeModel.Style)

	assert.Equal(t, "[$symbol $branch]($style)", cfg.GitBranch.Format)
	assert.Equal(t, "🌿", cfg.GitBranch.Symbol)

	assert.Equal(t, "bold red", cfg.GitStatus.Style)
	assert.Equal(t, "⇡", cfg.GitStatus.Ahead)
	assert.Equal(t, "⇣", cfg.GitStatus.Behind)
	assert.Equal(t, "⇕", cfg.GitStatus.Diverged)
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "$directory $claude_model", cfg.Format)
}

func TestLoadFromMergesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptline.toml")
	body := `
format = "$directory $git_branch $claude_model"

[directory]
truncation_length = 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "$directory $git_branch $claude_model", cfg.Format)
	assert.Equal(t, 5, cfg.Directory.TruncationLength)
	// Untouched keys keep their defaults.
	assert.Equal(t, "bold cyan", cfg.Directory.Style)
	assert.Equal(t, int64(500), cfg.CommandTimeout)
}

func TestLoadFromRejectsBrokenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptline.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = [unclosed"), 0o644))

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestValidateTimeoutRange(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.CommandTimeout = 49
	assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigValid))

	cfg.CommandTimeout = 50
	assert.NoError(t, cfg.Validate())

	cfg.CommandTimeout = 600000
	assert.NoError(t, cfg.Validate())

	cfg.CommandTimeout = 600001
	assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigValid))
}

func TestCollectWarningsUnknownToken(t *testing.T) {
	cfg := Default()
	cfg.Format = "$directory $unknown $git_branch"

	warnings := cfg.CollectWarnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "'$unknown'")
}

func TestCollectWarningsStyleSpecs(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.CollectWarnings())

	cfg.Directory.Style = "bold fg:green bg:black"
	cfg.ClaudeModel.Style = "bright-yellow bg:bright-blue"
	cfg.GitBranch.Style = "fg:196 bg:238"
	cfg.GitStatus.Style = "fg:#bf5700 bg:#003366"
	assert.Empty(t, cfg.CollectWarnings())

	cfg.Directory.Style = "sparkly rainbow"
	cfg.GitBranch.Style = "fg:300"
	warnings := cfg.CollectWarnings()
	assert.Len(t, warnings, 3)
}

func TestDefaultTOMLRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptline.toml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultTOML()), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
