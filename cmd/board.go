package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/quentinv/jobpipe/internal/app"
	"github.com/quentinv/jobpipe/internal/pipeline"
	"github.com/spf13/cobra"
)

var columnStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("13")).
	Underline(true)

// columnLabels maps columns to their display names
var columnLabels = map[pipeline.Column]string{
	pipeline.ColumnDraft:      "📝 Draft",
	pipeline.ColumnSent:       "📤 Sent",
	pipeline.ColumnPending:    "⏳ Pending",
	pipeline.ColumnDiscussing: "💬 Discussing",
	pipeline.ColumnFinalized:  "🏁 Finalized",
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the pipeline board",
	Long:  "Display candidatures grouped into the five pipeline columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		cmd.Println(titleStyle.Render("Pipeline Board"))

		caps := a.Capacities()
		for _, view := range pipeline.Columns(a.Store.All()) {
			header := fmt.Sprintf("%s (%d", columnLabels[view.Column], len(view.Items))
			if limit := caps[view.Column]; limit > 0 {
				header += fmt.Sprintf("/%d", limit)
			}
			header += ")"
			cmd.Printf("\n%s\n", columnStyle.Render(header))

			if len(view.Items) == 0 {
				cmd.Println("  (empty)")
				continue
			}
			for _, c := range view.Items {
				line := fmt.Sprintf("  • %s at %s", c.Position, c.Company)
				if view.Column == pipeline.ColumnFinalized {
					line += fmt.Sprintf(" [%s]", c.Status)
				}
				cmd.Println(line)
				cmd.Printf("    %s %s\n", labelStyle.Render("ID:"), c.ID)
			}
		}
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <id> <column>",
	Short: "Move a candidature to another column",
	Long: `Move a candidature between board columns. Forward jumps are always
allowed; at most one backward step is tolerated. Moving into finalized
without an accepted or declined status records a decline.`,
	Args: cobra.ExactArgs(2),
	Example: `  jobpipe board move 1755000000123 sent
  jobpipe board move 1755000000123 finalized`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		id := args[0]
		to := pipeline.Column(strings.ToLower(args[1]))
		valid := false
		for _, col := range pipeline.Order {
			if col == to {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown column %q, must be one of %v: %w", args[1], pipeline.Order, app.ErrInvalidArgument)
		}

		if _, ok := a.Store.FindByID(id); !ok {
			return fmt.Errorf("candidature %s: %w", id, app.ErrNotFound)
		}

		if !a.MoveCandidature(id, to) {
			return fmt.Errorf("cannot move %s to %s: %w", id, to, app.ErrIllegalMove)
		}

		c, _ := a.Store.FindByID(id)
		cmd.Printf("✓ Moved to %s (status: %s)\n", to, c.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(moveCmd)
}
