package commands

import (
	"github.com/spf13/cobra"

	"github.com/yairfalse/tagsync/internal/app"
)

func newWorkspaceCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "List accounts, containers and workspaces into the GTM Workspace sheet",
		Long: `Select the workspace tagsync works on.

Each listing reads the rows ticked in the previous one:
  tagsync workspace accounts      # every accessible account
  tagsync workspace containers    # containers of the ticked accounts
  tagsync workspace workspaces    # workspaces of the ticked containers

Tick one workspace row, or pass --workspace to skip the sheet selection.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "accounts",
			Short: "List every accessible account",
			Args:  cobra.NoArgs,
			RunE:  opts.runListing((*app.App).ListAccounts),
		},
		&cobra.Command{
			Use:   "containers",
			Short: "List the containers of the ticked accounts",
			Args:  cobra.NoArgs,
			RunE:  opts.runListing((*app.App).ListContainers),
		},
		&cobra.Command{
			Use:   "workspaces",
			Short: "List the workspaces of the ticked containers",
			Args:  cobra.NoArgs,
			RunE:  opts.runListing((*app.App).ListWorkspaces),
		},
	)
	return cmd
}

func newEventTagsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-tags",
		Short: "List and modify GA4 event tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Write the workspace's GA4 event tags to the Event Tag Settings sheet",
			Args:  cobra.NoArgs,
			RunE:  opts.runListing((*app.App).ListEventTags),
		},
		&cobra.Command{
			Use:   "modify",
			Short: "Create, update or delete tags as ticked in the Event Tag Settings sheet",
			Long: `Apply the Event Tag Settings sheet.

Each row may tick one of its three trailing boxes: create, update or delete.
Rows with no box ticked are ignored. Rows with more than one box ticked, or
missing the workspace path, name (create) or tag id (update, delete), are
skipped with a warning.`,
			Args: cobra.NoArgs,
			RunE: opts.runReport((*app.App).ModifyEventTags),
		},
	)
	return cmd
}

func newParamsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "params",
		Aliases: []string{"parameters"},
		Short:   "List and modify GA4 event parameters and user properties",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Write every parameter and user property of the GA4 event tags",
			Args:  cobra.NoArgs,
			RunE:  opts.runListing((*app.App).ListParams),
		},
		&cobra.Command{
			Use:   "tags",
			Short: "Write one blank row per GA4 event tag",
			Args:  cobra.NoArgs,
			RunE:  opts.runListing((*app.App).ListParamTags),
		},
		&cobra.Command{
			Use:   "modify",
			Short: "Apply the Create and Delete rows, one update per tag",
			Args:  cobra.NoArgs,
			RunE:  opts.runReport((*app.App).ModifyParams),
		},
	)
	return cmd
}

func newVariablesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variables",
		Short: "Maintain variable helper lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validation",
		Short: "Write {{variable}} dropdown items to the Validation Settings sheet",
		Args:  cobra.NoArgs,
		RunE:  opts.runListing((*app.App).WriteValidation),
	})
	return cmd
}

func newUsageCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Report where variables are used and delete unused ones",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Write the tags, triggers and variables referencing each variable",
			Args:  cobra.NoArgs,
			RunE:  opts.runListing((*app.App).ListUsage),
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Delete the variables ticked in the Variable Usage sheet",
			Args:  cobra.NoArgs,
			RunE:  opts.runReport((*app.App).DeleteUsage),
		},
	)
	return cmd
}

func newDictionaryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Document workspace resources",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tags",
		Short: "Write every tag to the Tag Data Dictionary sheet",
		Args:  cobra.NoArgs,
		RunE:  opts.runListing((*app.App).Dictionary),
	})
	return cmd
}
