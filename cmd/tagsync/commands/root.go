package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yairfalse/tagsync/internal/app"
	tserrors "github.com/yairfalse/tagsync/internal/errors"
	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/internal/output"
	"github.com/yairfalse/tagsync/pkg/config"
	"github.com/yairfalse/tagsync/pkg/types"
)

// appFactory builds the App for a command. Tests replace it.
var appFactory = func(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.App, error) {
	return app.NewFactory().Create(ctx, cfg, log)
}

type rootOptions struct {
	cfgFile     string
	failOnError bool

	cfg *config.Config
	log logger.Logger
}

// NewRootCommand builds the tagsync command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tagsync",
		Short: "Spreadsheet driven admin console for Google Tag Manager",
		Long: `tagsync lists Google Tag Manager resources into a spreadsheet and applies
the changes marked in it back to a GTM workspace.

Every applied change is appended to the Changelog sheet.

QUICK START:
  tagsync workspace accounts      # list accounts, then tick one
  tagsync workspace containers    # list containers of ticked accounts
  tagsync workspace workspaces    # list workspaces, then tick one
  tagsync event-tags list         # write GA4 event tags to the sheet
  tagsync event-tags modify       # apply the create/update/delete boxes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				return writeVersion(cmd.OutOrStdout(), currentBuild(), opts.cfg.Output.Format)
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.tagsync/config.yaml)")
	flags.String("workspace", "", "workspace path accounts/<id>/containers/<id>/workspaces/<id>")
	flags.String("spreadsheet", "", "Google Sheets spreadsheet id")
	flags.String("backend", config.BackendSheets, "workbook backend (sheets, local)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("output", "table", "output format (table, json, yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero when any row fails")
	rootCmd.Flags().Bool("version", false, "show version information")

	// Bind flags to viper
	viper.BindPFlag("workspace.path", flags.Lookup("workspace"))
	viper.BindPFlag("spreadsheet.id", flags.Lookup("spreadsheet"))
	viper.BindPFlag("spreadsheet.backend", flags.Lookup("backend"))
	viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	viper.BindPFlag("output.format", flags.Lookup("output"))
	viper.BindPFlag("output.no_color", flags.Lookup("no-color"))

	rootCmd.AddCommand(
		newWorkspaceCommand(opts),
		newEventTagsCommand(opts),
		newParamsCommand(opts),
		newVariablesCommand(opts),
		newUsageCommand(opts),
		newDictionaryCommand(opts),
		newCheckConfigCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// Execute runs the command tree and returns the process exit code
func Execute() int {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		tserrors.DisplayError(err)
		return tserrors.GetExitCode(err)
	}
	return 0
}

// initConfig reads in config file and ENV variables if set.
func (o *rootOptions) initConfig(cmd *cobra.Command) error {
	if o.cfgFile != "" {
		viper.SetConfigFile(o.cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return tserrors.Configuration(fmt.Sprintf("failed to load configuration: %v", err))
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return tserrors.Configuration(err.Error())
	}

	o.cfg = cfg
	o.log = log
	return nil
}

func (o *rootOptions) app(ctx context.Context) (*app.App, error) {
	return appFactory(ctx, o.cfg, o.log)
}

func (o *rootOptions) formatter(w io.Writer) (output.Formatter, error) {
	f, err := output.NewFormatter(o.cfg.Output.Format, output.ColorEnabled(w, o.cfg.Output.NoColor))
	if err != nil {
		return nil, tserrors.Configuration(err.Error())
	}
	return f, nil
}

type listingFunc func(*app.App, context.Context) (*types.Listing, error)

type reportFunc func(*app.App, context.Context) (*types.Report, error)

// runListing adapts an App listing operation to a cobra RunE
func (o *rootOptions) runListing(fn listingFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := o.app(cmd.Context())
		if err != nil {
			return err
		}
		listing, err := fn(a, cmd.Context())
		if err != nil {
			return err
		}
		f, err := o.formatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return f.FormatListing(listing, cmd.OutOrStdout())
	}
}

// runReport adapts an App sync operation to a cobra RunE. Row failures
// only fail the command with --fail-on-error.
func (o *rootOptions) runReport(fn reportFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := o.app(cmd.Context())
		if err != nil {
			return err
		}
		report, err := fn(a, cmd.Context())
		if err != nil {
			return err
		}
		report.Finish()

		f, err := o.formatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := f.FormatReport(report, cmd.OutOrStdout()); err != nil {
			return err
		}

		if rowErr := report.Err(); rowErr != nil && o.failOnError {
			return fmt.Errorf("%d of %d rows failed: %w", report.Counts().Failed, len(report.Outcomes), rowErr)
		}
		return nil
	}
}
