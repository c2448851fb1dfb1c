package cli

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/tempo/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := app.settings()
			if !cmd.Flags().Changed("listen") {
				listen = cfg.Listen
			}
			logger := app.Logger
			if logger == nil {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			}

			srv := httpapi.NewServer(httpapi.Services{
				Products: app.Products,
				Plans:    app.Plans,
				Phases:   app.Phases,
				Features: app.Features,
				Timeline: app.Timeline,
				Layout:   app.Layout,
			}, httpapi.ServerConfig{
				PixelsPerDay: cfg.PixelsPerDay,
				Logger:       logger,
			})

			return srv.ListenAndServe(ctx, listen, func(addr net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Serving tempo API on http://%s\n", addr)
			})
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config)")

	return cmd
}
