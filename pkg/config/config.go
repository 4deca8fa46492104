// Package config loads promptline's TOML configuration. Embedded
// defaults are always loaded first; a user file, when present, is merged
// over them so partial configs work.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/promptline/pkg/errors"
	"github.com/arthur-debert/promptline/pkg/format"
	"github.com/arthur-debert/promptline/pkg/style"
)

const (
	minCommandTimeout = 50
	maxCommandTimeout = 600000
)

// Config is the fully merged configuration tree.
type Config struct {
	Format         string `koanf:"format" toml:"format"`
	CommandTimeout int64  `koanf:"command_timeout" toml:"command_timeout"`
	Debug          bool   `koanf:"debug" toml:"debug"`

	Directory   DirectoryConfig   `koanf:"directory" toml:"directory"`
	ClaudeModel ClaudeModelConfig `koanf:"claude_model" toml:"claude_model"`
	GitBranch   GitBranchConfig   `koanf:"git_branch" toml:"git_branch"`
	GitStatus   GitStatusConfig   `koanf:"git_status" toml:"git_status"`
}

// DirectoryConfig configures the current-directory module.
type DirectoryConfig struct {
	Format           string `koanf:"format" toml:"format"`
	Style            string `koanf:"style" toml:"style"`
	TruncationLength int    `koanf:"truncation_length" toml:"truncation_length"`
	TruncationSymbol string `koanf:"truncation_symbol" toml:"truncation_symbol"`
	TruncateToRepo   bool   `koanf:"truncate_to_repo" toml:"truncate_to_repo"`
	Disabled         bool   `koanf:"disabled" toml:"disabled"`
}

// ClaudeModelConfig configures the model-name module.
type ClaudeModelConfig struct {
	Format   string `koanf:"format" toml:"format"`
	Style    string `koanf:"style" toml:"style"`
	Symbol   string `koanf:"symbol" toml:"symbol"`
	Disabled bool   `koanf:"disabled" toml:"disabled"`
}

// GitBranchConfig configures the git branch module.
type GitBranchConfig struct {
	Format   string `koanf:"format" toml:"format"`
	Style    string `koanf:"style" toml:"style"`
	Symbol   string `koanf:"symbol" toml:"symbol"`
	Disabled bool   `koanf:"disabled" toml:"disabled"`
}

// GitStatusConfig configures the git status module and its symbols.
type GitStatusConfig struct {
	Format      string `koanf:"format" toml:"format"`
	Style       string `koanf:"style" toml:"style"`
	Conflicted  string `koanf:"conflicted" toml:"conflicted"`
	Stashed     string `koanf:"stashed" toml:"stashed"`
	Deleted     string `koanf:"deleted" toml:"deleted"`
	Renamed     string `koanf:"renamed" toml:"renamed"`
	Modified    string `koanf:"modified" toml:"modified"`
	Typechanged string `koanf:"typechanged" toml:"typechanged"`
	Staged      string `koanf:"staged" toml:"staged"`
	Untracked   string `koanf:"untracked" toml:"untracked"`
	Ahead       string `koanf:"ahead" toml:"ahead"`
	Behind      string `koanf:"behind" toml:"behind"`
	Diverged    string `koanf:"diverged" toml:"diverged"`
	Disabled    bool   `koanf:"disabled" toml:"disabled"`
}

// Timeout returns the per-module operation deadline.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.CommandTimeout) * time.Millisecond
}

// Path returns the user configuration file location, which may not exist.
func Path() string {
	if xdg.ConfigHome != "" {
		return filepath.Join(xdg.ConfigHome, "promptline.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "promptline.toml"
	}
	return filepath.Join(home, ".config", "promptline.toml")
}

// Load merges the embedded defaults with the user config file at the
// standard location. A missing user file is not an error.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom merges the embedded defaults with the TOML file at path.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
					WithDetail("path", path)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode configuration")
	}
	return &cfg, nil
}

// Default returns the embedded defaults without touching the filesystem.
func Default() *Config {
	cfg, err := LoadFrom("")
	if err != nil {
		// The embedded defaults are compiled in; failing to parse them is
		// a build defect.
		panic(err)
	}
	return cfg
}

// Validate enforces hard constraints. Violations make the configuration
// unusable, unlike the advisory CollectWarnings.
func (c *Config) Validate() error {
	if c.CommandTimeout < minCommandTimeout || c.CommandTimeout > maxCommandTimeout {
		return errors.Newf(errors.ErrConfigValid,
			"command_timeout out of range (%d..%d): %d",
			minCommandTimeout, maxCommandTimeout, c.CommandTimeout)
	}
	return nil
}

// knownTokens are the format tokens the engine can resolve.
var knownTokens = map[string]struct{}{
	"directory":    {},
	"claude_model": {},
	"git_branch":   {},
	"git_status":   {},
	"character":    {},
}

// CollectWarnings reports advisory problems: unknown format tokens and
// dubious style specs. The renderer tolerates all of them at runtime.
func (c *Config) CollectWarnings() []string {
	var warnings []string

	for _, token := range format.Tokenize(c.Format) {
		if _, ok := knownTokens[token]; !ok {
			warnings = append(warnings, fmt.Sprintf("unknown format token: '$%s'", token))
		}
	}

	checkStyle := func(module, spec string) {
		for _, problem := range style.ValidateSpec(spec) {
			warnings = append(warnings, fmt.Sprintf("%s.style: %s", module, problem))
		}
	}
	checkStyle("directory", c.Directory.Style)
	checkStyle("claude_model", c.ClaudeModel.Style)
	checkStyle("git_branch", c.GitBranch.Style)
	checkStyle("git_status", c.GitStatus.Style)

	return warnings
}
