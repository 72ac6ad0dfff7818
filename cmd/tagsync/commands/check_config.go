package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yairfalse/tagsync/internal/output"
	"github.com/yairfalse/tagsync/pkg/config"
)

func newCheckConfigCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate configuration and locate Google credentials",
		Long: `Check tagsync configuration without calling any Google API.

This command helps diagnose configuration issues by:
- Showing which config file was loaded
- Validating the workbook backend settings
- Locating the credentials Application Default Credentials would use`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckConfig(cmd, opts.cfg, config.NewCredentialsChecker())
		},
	}
}

func runCheckConfig(cmd *cobra.Command, cfg *config.Config, checker *config.CredentialsChecker) error {
	out := cmd.OutOrStdout()
	if !output.ColorEnabled(out, cfg.Output.NoColor) {
		color.NoColor = true
	}

	// Status symbols
	okSymbol := color.GreenString("[OK]")
	failSymbol := color.RedString("[FAIL]")
	warnSymbol := color.YellowString("[WARN]")

	fmt.Fprintln(out, "Checking tagsync configuration...")
	fmt.Fprintln(out)

	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			fmt.Fprintf(out, "Config file: %s %s\n", used, okSymbol)
		} else {
			fmt.Fprintf(out, "Config file: %s %s\n", used, failSymbol)
		}
	} else {
		fmt.Fprintf(out, "Config file: none, using defaults and environment %s\n", warnSymbol)
	}

	failed := false
	if err := cfg.Validate(); err != nil {
		failed = true
		fmt.Fprintf(out, "Workbook: %s %s\n", failSymbol, err)
	} else if cfg.UsesSheets() {
		fmt.Fprintf(out, "Workbook: Google Sheets %s %s\n", cfg.Spreadsheet.ID, okSymbol)
	} else {
		fmt.Fprintf(out, "Workbook: local directory %s %s\n", cfg.Spreadsheet.LocalDir, okSymbol)
	}

	if cfg.Workspace.Path != "" {
		fmt.Fprintf(out, "Workspace: %s %s\n", cfg.Workspace.Path, okSymbol)
	} else {
		fmt.Fprintf(out, "Workspace: taken from the ticked row of the GTM Workspace sheet %s\n", warnSymbol)
	}

	fmt.Fprintf(out, "Request delay: %s\n", cfg.API.RequestDelay)

	auth := checker.Check(cfg)
	switch {
	case auth.Found:
		fmt.Fprintf(out, "Credentials: %s (%s) %s\n", auth.Message, auth.Source, okSymbol)
	case auth.Source == config.SourceNone:
		fmt.Fprintf(out, "Credentials: %s %s\n", auth.Message, warnSymbol)
	default:
		failed = true
		fmt.Fprintf(out, "Credentials: %s %s\n", auth.Message, failSymbol)
	}

	actor := cfg.Actor
	if actor == "" {
		actor = auth.ClientEmail
	}
	if actor == "" {
		fmt.Fprintf(out, "Changelog actor: unknown, set actor in config %s\n", warnSymbol)
	} else {
		fmt.Fprintf(out, "Changelog actor: %s\n", actor)
	}

	if failed {
		return fmt.Errorf("configuration check failed")
	}
	return nil
}
