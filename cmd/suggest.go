package cmd

import (
	"fmt"

	"github.com/quentinv/jobpipe/internal/app"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show ranked suggestions",
	Long:  "Run an insight sweep over the current pipeline and show the ranked suggestion feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		a.Insights.Sweep()
		suggestions := a.Insights.Suggestions()
		if len(suggestions) == 0 {
			cmd.Println("No suggestions right now. Keep the pipeline moving.")
			return nil
		}

		cmd.Println(titleStyle.Render("Suggestions"))
		for _, s := range suggestions {
			cmd.Printf("\n%s %s\n", labelStyle.Render("•"), s.Title)
			cmd.Printf("  %s\n", s.Detail)
			cmd.Printf("  %s %s | %s %d%% | %s %s\n",
				labelStyle.Render("Impact:"), s.Impact,
				labelStyle.Render("Confidence:"), s.Confidence,
				labelStyle.Render("ID:"), s.ID)
		}
		return nil
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss <id>",
	Short: "Dismiss a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		// Recompute the feed so the id resolves in a fresh process
		a.Insights.Sweep()
		if !a.Insights.Dismiss(args[0]) {
			return fmt.Errorf("suggestion %s: %w", args[0], app.ErrNotFound)
		}
		cmd.Println("✓ Suggestion dismissed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.AddCommand(dismissCmd)
}
