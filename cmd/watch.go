package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quentinv/jobpipe/internal/app"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the periodic sweeps until interrupted",
	Long: `Keep the automation engine running: time-based rules are evaluated
hourly and the suggestion feed is refreshed every 30 minutes (both
configurable). Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Watching: rules every %dm, insights every %dm. Ctrl-C to stop.\n",
			a.Config.RuleSweepMinutes, a.Config.InsightSweepMinutes)

		clock.Run(ctx, a.Clock, a.Log, a.SweepTasks()...)
		cmd.Println("\nStopped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
