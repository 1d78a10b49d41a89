package cli

import (
	"github.com/spf13/cobra"

	"offr-io/go_backend/internal/app/config"
	"offr-io/go_backend/internal/domain/quote"
)

// App carries what the commands need from their environment.
type App struct {
	LoadConfig func() (config.Config, error)
	Clock      quote.Clock
}

func DefaultApp() *App {
	return &App{LoadConfig: config.Load, Clock: quote.SystemClock()}
}

// NewRootCmd creates the top-level "offr" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "offr",
		Short:         "Quote generation service for craftsmen",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newQuoteCmd(app),
		newRenderCmd(app),
	)

	return root
}
