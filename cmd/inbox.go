package cmd

import (
	"fmt"

	"github.com/quentinv/jobpipe/internal/app"
	"github.com/quentinv/jobpipe/pkg/models"
	"github.com/spf13/cobra"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Show notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		showAll, _ := cmd.Flags().GetBool("all")
		items := a.Inbox.All()
		unread := a.Inbox.UnreadCount()

		cmd.Println(titleStyle.Render(fmt.Sprintf("Inbox (%d unread)", unread)))
		shown := 0
		for _, n := range items {
			if !showAll && n.Read {
				continue
			}
			shown++
			marker := "○"
			if n.Read {
				marker = "●"
			}
			cmd.Printf("\n%s %s %s\n", marker, kindBadge(n.Kind), n.Title)
			cmd.Printf("  %s\n", n.Message)
			cmd.Printf("  %s %s | %s %s\n",
				labelStyle.Render("When:"), n.CreatedAt.Format("Jan 2, 2006 15:04"),
				labelStyle.Render("ID:"), n.ID)
		}
		if shown == 0 {
			cmd.Println("Nothing unread. Use --all to see everything.")
		}
		return nil
	},
}

var inboxReadCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark notifications read",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		all, _ := cmd.Flags().GetBool("all")
		if all || len(args) == 0 {
			a.Inbox.MarkAllRead()
			cmd.Println("✓ All notifications marked read")
			return nil
		}
		if !a.Inbox.MarkRead(args[0]) {
			return fmt.Errorf("notification %s: %w", args[0], app.ErrNotFound)
		}
		cmd.Println("✓ Marked read")
		return nil
	},
}

func kindBadge(k models.NotificationKind) string {
	switch k {
	case models.NotifReminder:
		return "⏰"
	case models.NotifSuccess:
		return "🎉"
	case models.NotifError:
		return "❌"
	default:
		return "ℹ️"
	}
}

func init() {
	rootCmd.AddCommand(inboxCmd)
	inboxCmd.AddCommand(inboxReadCmd)

	inboxCmd.Flags().Bool("all", false, "Include read notifications")
	inboxReadCmd.Flags().Bool("all", false, "Mark everything read")
}
