package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search indexed documents",
	Long: `Performs a full-text search over indexed document content and filenames.
Results are printed in relevance order with a highlighted excerpt.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	hits, err := searchService.Search(context.Background(), term, searchLimit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			return errors.New("search term is required")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, hits)
	}
	return outputSearchTable(cmd, hits)
}

func outputSearchJSON(cmd *cobra.Command, hits []domain.SearchHit) error {
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, hits []domain.SearchHit) error {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range hits {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, hits[i].Filename, hits[i].Score)
		if hits[i].URL != "" {
			cmd.Printf("      %s\n", hits[i].URL)
		}
		if hits[i].Excerpt != "" {
			cmd.Printf("      %s\n", hits[i].Excerpt)
		}
		cmd.Println()
	}
	return nil
}
