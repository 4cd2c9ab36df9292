package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/newsdesk/app"
	"github.com/ncobase/newsdesk/upload"
	"github.com/spf13/cobra"
)

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload an image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				f, closer, err := upload.OpenFile(args[0])
				if err != nil {
					return err
				}
				defer closer.Close()

				res := <-upload.Start(ctx, a.Uploader, f)
				if res.Err != nil {
					return userError(res.Err)
				}
				return printJSON(cmd.OutOrStdout(), res.Asset)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "remove URL",
		Short: "Delete a hosted image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Remover.Remove(ctx, args[0]); err != nil {
					return userError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Image deleted")
				return nil
			})
		},
	})
	return cmd
}
