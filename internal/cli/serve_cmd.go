package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"offr-io/go_backend/internal/app"
)

func newServeCmd(a *App) *cobra.Command {
	var addr, databaseURL, sqlitePath string
	var qf quoteFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.LoadConfig()
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("addr") {
				cfg.HTTPAddr = addr
			}
			if fs.Changed("database-url") {
				cfg.DatabaseURL = databaseURL
			}
			if fs.Changed("sqlite") {
				cfg.SQLitePath = sqlitePath
			}
			if err := qf.apply(fs, &cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from HTTP_ADDR)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL; SQLite is used when empty")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database path (default from SQLITE_PATH)")
	qf.register(cmd.Flags())

	return cmd
}
