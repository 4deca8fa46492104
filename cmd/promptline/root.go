package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/promptline/internal/version"
	"github.com/arthur-debert/promptline/pkg/claude"
	"github.com/arthur-debert/promptline/pkg/config"
	"github.com/arthur-debert/promptline/pkg/engine"
	"github.com/arthur-debert/promptline/pkg/logging"
)

// NewRootCmd builds the promptline command tree. The bare command is the
// status line entry point: JSON on stdin, ANSI status line on stdout.
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "promptline",
		Short:   "Customizable status line for Claude Code",
		Long:    "promptline renders a Starship-style status line from the session JSON\nClaude Code writes to stdin. Configure it via " + config.Path() + ".",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatusLine(cmd.InOrStdin(), cmd.OutOrStdout(), verbosity)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newModulesCmd())

	return rootCmd
}

// runStatusLine is the stdin-to-stdout render path. It never returns an
// error for bad input: Claude Code shows stdout either way, so problems
// become fallback messages and the details go to stderr.
func runStatusLine(stdin io.Reader, stdout io.Writer, verbosity int) error {
	logger := logging.GetLogger("cli")

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("config error")
		fmt.Fprint(stdout, msgFailedInvalidConfig)
		return nil
	}

	// config debug=true implies debug-level logging without flags.
	if cfg.Debug && verbosity < 2 {
		logging.SetupLogger(2)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("config validation error")
		fmt.Fprint(stdout, msgFailedInvalidConfig)
		return nil
	}
	for _, w := range cfg.CollectWarnings() {
		logger.Warn().Msg(w)
	}

	payload, err := io.ReadAll(stdin)
	if err != nil || strings.TrimSpace(string(payload)) == "" {
		fmt.Fprint(stdout, msgFailedEmptyInput)
		return nil
	}

	input, err := claude.Parse(payload)
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse input")
		fmt.Fprint(stdout, msgFailedInvalidJSON)
		return nil
	}
	logger.Debug().
		Str("model", input.Model.DisplayName).
		Str("cwd", input.CurrentDir()).
		Msg("rendering status line")

	fmt.Fprint(stdout, engine.Render(input, cfg))
	return nil
}
