// ABOUTME: CLI command for raw semantic search over the catalog
// ABOUTME: Shows nearest courses with distances, without invoking the LLM
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchLimit int

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the course catalog",
		Long: `Search the course catalog by semantic similarity.

Embeds the query and returns the nearest courses in ascending
distance order. No answer is generated and conversation memory
is untouched.

Examples:
  advisor search "operating systems"
  advisor search --limit 10 "machine learning"
  advisor search --format json "databases"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	advisor, err := newAdvisor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	results, err := advisor.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("searching courses: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No courses found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DISTANCE\tCODE\tTITLE\tINSTRUCTOR\n")
	fmt.Fprintf(w, "--------\t----\t-----\t----------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.4f\t%s\t%s\t%s\n",
			result.Distance,
			result.Course.Code,
			truncate(result.Course.Title, 40),
			truncate(orNotListed(result.Course.Instructor), 25))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}

	return nil
}
