package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

var (
	syncRoot string
	syncLast bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise Dropbox files into the index",
	Long: `Runs one synchronisation pass: enumerates text files under the remote
root, resolves a shared link for each, downloads the content and upserts it
into the search index. Files that fail are skipped and reported; only an
enumeration failure aborts the run.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncRoot, "root", "", "remote folder to sync (defaults to the configured root)")
	syncCmd.Flags().BoolVar(&syncLast, "last", false, "show the last sync report instead of running")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := context.Background()

	if syncLast {
		report, err := syncOrchestrator.LastReport(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				cmd.Println("No sync has completed yet.")
				return nil
			}
			return fmt.Errorf("loading last report: %w", err)
		}
		printReport(cmd, report)
		return nil
	}

	root := configuredRoot
	if cmd.Flags().Changed("root") {
		root = syncRoot
	}

	cmd.Printf("Synchronising %s...\n", displayRoot(root))
	report, err := syncOrchestrator.Sync(ctx, root)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, report *domain.SyncReport) {
	cmd.Printf("Sync %s of %s: %d indexed, %d skipped (took %s)\n",
		report.ID, displayRoot(report.Root), report.Indexed, report.Skipped,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	for _, skip := range report.Skips {
		cmd.Printf("  skipped %s at %s: %s\n", skip.Path, skip.Stage, skip.Reason)
	}
}

// displayRoot names the account root when the path is empty.
func displayRoot(root string) string {
	if root == "" {
		return "app folder root"
	}
	return root
}
