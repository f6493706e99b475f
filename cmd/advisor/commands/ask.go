// ABOUTME: CLI command to ask the advisor a single question
// ABOUTME: Prints the grounded answer and the courses it was based on
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askTopK int

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the advisor one question",
		Long: `Ask the course advisor a single question.

The question is embedded, the nearest catalog courses are retrieved,
and the answer is generated grounded in those courses.

Examples:
  advisor ask "what should I take to get into machine learning?"
  advisor ask --top-k 5 "intro courses without prerequisites"
  advisor ask --format json "tell me about AI courses"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of courses to retrieve (default from config)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(args[0])
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if askTopK > 0 {
		cfg.TopK = askTopK
	}

	advisor, err := newAdvisor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	advice, err := advisor.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("asking advisor: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(advice, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), advice.Answer)

	if len(advice.Courses) > 0 && !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "\nRecommended courses:")
		for i, course := range advice.Courses {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s %s\n", i+1, course.Code, course.Title)
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "     Instructor: %s\n", orNotListed(course.Instructor))
				fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", truncate(course.Description, 120))
			}
		}
	}

	return nil
}
