// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all advisor subcommands
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all subcommands
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 ██████╗ ██████╗ ██╗   ██╗██████╗ ███████╗███████╗
██╔════╝██╔═══██╗██║   ██║██╔══██╗██╔════╝██╔════╝
██║     ██║   ██║██║   ██║██████╔╝███████╗█████╗
██║     ██║   ██║██║   ██║██╔══██╗╚════██║██╔══╝
╚██████╗╚██████╔╝╚██████╔╝██║  ██║███████║███████╗
 ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚══════╝╚══════╝
          A D V I S O R`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "AI-powered course advisor",
		Long: banner + `

Course Advisor answers free-text questions about a course catalog.
It retrieves the most relevant courses with semantic vector search,
grounds a language-model answer in them, and keeps short-term
conversational memory across turns in a session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewCoursesCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
