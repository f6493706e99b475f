// ABOUTME: CLI command to list the loaded course catalog
// ABOUTME: Table or JSON output of catalog records in positional order
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/course-advisor/internal/catalog"
)

var coursesLimit int

// NewCoursesCmd creates the courses command
func NewCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List the course catalog",
		Long: `List the courses in the catalog file, in stored order.

The listed ordinal positions are the same ordinals used by the
vector index.

Examples:
  advisor courses
  advisor courses --limit 20
  advisor courses --format json`,
		RunE: runCourses,
	}

	cmd.Flags().IntVar(&coursesLimit, "limit", 0, "Maximum courses to list (0 = all)")

	return cmd
}

func runCourses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	courses := store.Courses()
	if coursesLimit > 0 && coursesLimit < len(courses) {
		courses = courses[:coursesLimit]
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(courses, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ORDINAL\tCODE\tTITLE\tINSTRUCTOR\n")
	fmt.Fprintf(w, "-------\t----\t-----\t----------\n")
	for i, course := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i,
			course.Code,
			truncate(course.Title, 45),
			truncate(orNotListed(course.Instructor), 25))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d course(s) in catalog (%s)\n", store.Len(), store.Path())
	}

	return nil
}
