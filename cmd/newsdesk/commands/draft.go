package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/newsdesk/app"
	"github.com/ncobase/newsdesk/util"
	"github.com/spf13/cobra"
)

// NewDraftCommand creates the draft command group
func NewDraftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or discard the unsaved news draft",
	}
	cmd.AddCommand(newDraftShowCommand(), newDraftClearCommand())
	return cmd
}

func newDraftShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved draft as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				d, ok, err := a.Drafts.Load(ctx)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "No draft saved")
					return nil
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"draft":       d,
					"slugPreview": util.SlugOrTitle(d.Slug, d.Title),
				})
			})
		},
	}
}

func newDraftClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Drafts.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared")
				return nil
			})
		},
	}
}
