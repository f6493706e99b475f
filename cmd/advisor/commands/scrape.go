// ABOUTME: CLI command to scrape the course catalog from the department site
// ABOUTME: Produces the courses.json data file the advisor reads
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/harper/course-advisor/internal/scrape"
)

var scrapeOutput string

// NewScrapeCmd creates the scrape command
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the course catalog",
		Long: `Fetch the department course listing and each course page, and
write the catalog file the advisor reads.

After scraping, run "advisor sync" (or just ask a question) to
rebuild the vector index against the new catalog.

Examples:
  advisor scrape
  advisor scrape --output data/courses.json`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&scrapeOutput, "output", "", "Output path (default from config)")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	output := scrapeOutput
	if output == "" {
		output = cfg.CatalogPath
	}

	if !quiet {
		log.Printf("Scraping %s ...", cfg.ScrapeBaseURL)
	}

	scraper := scrape.New(cfg.ScrapeBaseURL)
	courses, err := scraper.Catalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("scraping catalog: %w", err)
	}

	if err := scrape.SaveCatalog(output, courses); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d courses to %s\n", len(courses), output)
	}

	return nil
}
