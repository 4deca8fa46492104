package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/promptline/pkg/config"
	"github.com/arthur-debert/promptline/pkg/format"
	"github.com/arthur-debert/promptline/pkg/modules"
)

func newModulesCmd() *cobra.Command {
	var (
		listAll     bool
		listEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Inspect the module registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch {
			case listAll:
				for _, name := range modules.Names() {
					fmt.Fprintln(out, name)
				}
				return nil

			case listEnabled:
				cfg, err := config.Load()
				if err != nil {
					cfg = config.Default()
				}
				for _, name := range format.Tokenize(cfg.Format) {
					if name == "character" || !modules.Has(name) {
						continue
					}
					if moduleEnabled(cfg, name) {
						fmt.Fprintln(out, name)
					}
				}
				return nil
			}

			fmt.Fprintln(out, "Use --list | --enabled")
			return nil
		},
	}

	cmd.Flags().BoolVar(&listAll, "list", false, "List all available modules")
	cmd.Flags().BoolVar(&listEnabled, "enabled", false, "List enabled modules for current config")

	return cmd
}

func moduleEnabled(cfg *config.Config, name string) bool {
	switch name {
	case "directory":
		return !cfg.Directory.Disabled
	case "claude_model":
		return !cfg.ClaudeModel.Disabled
	case "git_branch":
		return !cfg.GitBranch.Disabled
	case "git_status":
		return !cfg.GitStatus.Disabled
	}
	return true
}
