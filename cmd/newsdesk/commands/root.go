// Package commands is the newsdesk command line.
package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/newsdesk/app"
	"github.com/ncobase/newsdesk/config"
	"github.com/spf13/cobra"
)

var configFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "newsdesk",
		Short:         "Manage news articles through the newsroom API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(
		NewServeCommand(),
		NewLoginCommand(),
		NewRegisterCommand(),
		NewLogoutCommand(),
		NewWhoamiCommand(),
		NewProfileCommand(),
		NewNewsCommand(),
		NewDraftCommand(),
		NewUploadCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// withApp loads the configuration, builds the container, runs fn and
// releases the container.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
