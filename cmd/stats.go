package cmd

import (
	"fmt"

	"github.com/quentinv/jobpipe/internal/app"
	"github.com/quentinv/jobpipe/pkg/models"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View pipeline statistics",
	Long:  "Display analytics about your candidatures, refusal ratio, and weekly volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		items := a.Store.All()
		if len(items) == 0 {
			cmd.Println("No candidatures yet. Add one with 'jobpipe add'")
			return nil
		}

		stats := calculateStats(items, a)

		cmd.Println(titleStyle.Render("Pipeline Statistics"))

		cmd.Printf("\n%s\n", labelStyle.Render("Overview"))
		cmd.Printf("  Total: %d\n", stats.Total)
		for _, s := range models.AllStatuses {
			if n := stats.ByStatus[s]; n > 0 {
				cmd.Printf("  %s: %d (%.1f%%)\n", s, n, float64(n)/float64(stats.Total)*100)
			}
		}

		cmd.Printf("\n%s\n", labelStyle.Render("This Week"))
		cmd.Printf("  Sent: %d of %d (goal)\n", stats.SentThisWeek, a.Config.WeeklyGoal)

		if stats.Decided > 0 {
			cmd.Printf("\n%s\n", labelStyle.Render("Outcomes"))
			cmd.Printf("  Decided: %d\n", stats.Decided)
			cmd.Printf("  Refusal Ratio: %.1f%%\n", float64(stats.Declined)/float64(stats.Decided)*100)
		}

		if len(stats.BySource) > 0 {
			cmd.Printf("\n%s\n", labelStyle.Render("Sources"))
			for source, n := range stats.BySource {
				cmd.Printf("  %s: %d\n", source, n)
			}
		}
		return nil
	},
}

type pipelineStats struct {
	Total        int
	ByStatus     map[models.Status]int
	BySource     map[string]int
	SentThisWeek int
	Declined     int
	Decided      int
}

func calculateStats(items []models.Candidature, a *app.App) pipelineStats {
	stats := pipelineStats{
		ByStatus: make(map[models.Status]int),
		BySource: make(map[string]int),
	}

	weekAgo := a.Clock.Now().AddDate(0, 0, -7)
	stats.Total = len(items)
	for _, c := range items {
		stats.ByStatus[c.Status]++
		if c.Source != "" {
			stats.BySource[c.Source]++
		}
		if c.Status != models.StatusDraft && c.CreatedAt.After(weekAgo) {
			stats.SentThisWeek++
		}
		switch c.Status {
		case models.StatusDeclined:
			stats.Declined++
			stats.Decided++
		case models.StatusAccepted:
			stats.Decided++
		}
	}
	return stats
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
