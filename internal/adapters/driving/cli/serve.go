package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// serveRunner starts the HTTP server and blocks until ctx is cancelled.
// Injected by the composition root.
var serveRunner func(ctx context.Context) error

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP search API",
	Long: `Starts the HTTP server exposing /api/search, /api/sync, /api/status and
health endpoints. Optionally runs a sync at startup and on a periodic
interval, per configuration. Stops on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// SetServeRunner registers the server entry point used by the serve command.
func SetServeRunner(fn func(ctx context.Context) error) {
	serveRunner = fn
}

func runServe(_ *cobra.Command, _ []string) error {
	if serveRunner == nil {
		return errors.New("server not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serveRunner(ctx)
}
