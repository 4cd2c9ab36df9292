package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ncobase/newsdesk/app"
	"github.com/ncobase/newsdesk/config"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if addr != "" {
					host, port, err := splitAddr(addr)
					if err != nil {
						return err
					}
					a.Config.Server.Host, a.Config.Server.Port = host, port
				}

				a.Config.Watch(func(c *config.Config) {
					if err := a.Logger.Init(c.Logger); err != nil {
						a.Logger.Warnf(ctx, "logger not reconfigured: %v", err)
						return
					}
					a.Logger.Infof(ctx, "configuration reloaded from %s", c.ConfigFile())
				}, func(err error) {
					a.Logger.Warnf(ctx, "configuration reload failed: %v", err)
				})

				return a.Server().Run(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, host:port (overrides server.host/port)")
	return cmd
}
