package cmd

import (
	"fmt"

	"github.com/quentinv/jobpipe/internal/app"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage reminders",
	Long:  "List, add, complete, and remove reminders. Derived reminders follow their candidature.",
}

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		showDone, _ := cmd.Flags().GetBool("done")

		pending := a.Reminders.Pending()
		cmd.Println(titleStyle.Render("Pending Reminders"))
		if len(pending) == 0 {
			cmd.Println("Nothing pending.")
		}
		for _, r := range pending {
			marker := " "
			if a.Reminders.Overdue(r) {
				marker = overdueStyle.Render("OVERDUE")
			}
			cmd.Printf("\n%s %s %s\n", labelStyle.Render("•"), r.Title, marker)
			cmd.Printf("  %s %s | %s %s | %s %s\n",
				labelStyle.Render("Due:"), r.Date,
				labelStyle.Render("Origin:"), r.Origin,
				labelStyle.Render("ID:"), r.ID)
			if r.Description != "" {
				cmd.Printf("  %s\n", r.Description)
			}
		}

		if showDone {
			done := a.Reminders.Completed()
			cmd.Println(titleStyle.Render("Completed"))
			for _, r := range done {
				cmd.Printf("  ✓ %s (%s)\n", r.Title, r.Date)
			}
		}
		return nil
	},
}

var remindAddCmd = &cobra.Command{
	Use:     "add <title>",
	Short:   "Add a manual reminder",
	Args:    cobra.ExactArgs(1),
	Example: `  jobpipe remind add "Call recruiter" --date 15/09/2026 --desc "About the Globex role"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		dateStr, _ := cmd.Flags().GetString("date")
		if dateStr == "" {
			return fmt.Errorf("--date is required: %w", app.ErrInvalidArgument)
		}
		date, err := parseCalDate(dateStr)
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetString("desc")

		r := a.Reminders.AddManual(args[0], desc, date)
		cmd.Printf("✓ Reminder added for %s (ID: %s)\n", r.Date, r.ID)
		return nil
	},
}

var remindDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a reminder completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		undo, _ := cmd.Flags().GetBool("undo")
		if !a.Reminders.Complete(args[0], !undo) {
			return fmt.Errorf("reminder %s: %w", args[0], app.ErrNotFound)
		}
		if undo {
			cmd.Println("✓ Reminder reopened")
		} else {
			cmd.Println("✓ Reminder completed")
		}
		return nil
	},
}

var remindRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a manual reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		if a.Reminders.Delete(args[0]) {
			cmd.Println("✓ Reminder deleted")
		} else {
			// Derived reminders are kept in sync with their source; the
			// delete path leaves them alone rather than erroring.
			cmd.Println("Reminder not deleted (unknown id or derived reminder)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindDoneCmd)
	remindCmd.AddCommand(remindRmCmd)

	remindListCmd.Flags().Bool("done", false, "Also show completed reminders")
	remindAddCmd.Flags().String("date", "", "Reminder date (DD/MM/YYYY)")
	remindAddCmd.Flags().String("desc", "", "Description")
	remindDoneCmd.Flags().Bool("undo", false, "Reopen instead of completing")
}
