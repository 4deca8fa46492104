package main

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/promptline/pkg/config"
)

func newConfigCmd() *cobra.Command {
	var (
		showPath    bool
		showDefault bool
		validate    bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch {
			case showPath:
				fmt.Fprintln(out, config.Path())
				return nil

			case showDefault:
				encoded, err := toml.Marshal(config.Default())
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(encoded))
				return nil

			case validate:
				// Diagnostics go to stderr; stdout carries only OK/INVALID.
				errPrinter := pterm.Error.WithWriter(cmd.ErrOrStderr())
				warnPrinter := pterm.Warning.WithWriter(cmd.ErrOrStderr())

				cfg, err := config.Load()
				if err != nil {
					errPrinter.Printfln("Config error: %v", err)
					fmt.Fprintln(out, "INVALID")
					return nil
				}
				if err := cfg.Validate(); err != nil {
					errPrinter.Printfln("Config validation error: %v", err)
					fmt.Fprintln(out, "INVALID")
					return nil
				}
				for _, w := range cfg.CollectWarnings() {
					warnPrinter.Println(w)
				}
				fmt.Fprintln(out, "OK")
				return nil
			}

			fmt.Fprintln(out, "Use --path | --default | --validate")
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "Print config file path")
	cmd.Flags().BoolVar(&showDefault, "default", false, "Print default config (TOML)")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate current config")

	return cmd
}
