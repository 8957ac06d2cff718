package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/quentinv/jobpipe/internal/app"
	"github.com/spf13/cobra"
)

// application is set by the persistent pre-run and closed after Execute
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "jobpipe",
	Short: "Job application pipeline tracker",
	Long: `Jobpipe tracks your job-search pipeline from draft to outcome.
It keeps a kanban board of your candidatures, runs automation rules on
status changes and on a schedule, surfaces ranked suggestions, and
manages reminders.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize app with all dependencies
		a, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		application = a

		// Store app in command context
		cmd.SetContext(app.IntoContext(cmd.Context(), a))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Cleanup: close app resources
	if application != nil {
		application.Close()
	}
}
