package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/quentinv/jobpipe/internal/app"
	"github.com/quentinv/jobpipe/internal/pipeline"
	"github.com/quentinv/jobpipe/pkg/models"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a candidature",
	Example: `  jobpipe add --company "Acme Inc" --position "Backend Engineer"
  jobpipe add --company Globex --position SRE --priority 1 --source linkedin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		company, _ := cmd.Flags().GetString("company")
		position, _ := cmd.Flags().GetString("position")
		if company == "" || position == "" {
			return fmt.Errorf("both --company and --position are required: %w", app.ErrInvalidArgument)
		}

		location, _ := cmd.Flags().GetString("location")
		source, _ := cmd.Flags().GetString("source")
		notes, _ := cmd.Flags().GetString("notes")
		priority, _ := cmd.Flags().GetInt("priority")
		if err := validPriority(priority); err != nil {
			return err
		}
		remind, _ := cmd.Flags().GetString("remind")

		c := models.Candidature{
			Company:  company,
			Position: position,
			Location: location,
			Source:   source,
			Notes:    notes,
			Priority: priority,
		}
		if remind != "" {
			d, err := parseCalDate(remind)
			if err != nil {
				return err
			}
			c.ReminderDate = d
		}

		id := a.Store.Insert(c)
		cmd.Printf("✓ Candidature added: %s at %s (ID: %s)\n", position, company, id)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all candidatures",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		filter, _ := cmd.Flags().GetString("status")
		items := a.Store.All()
		if len(items) == 0 {
			cmd.Println("No candidatures yet. Add one with 'jobpipe add'")
			return nil
		}

		cmd.Println(titleStyle.Render("Candidatures"))
		shown := 0
		for _, c := range items {
			if filter != "" && string(c.Status) != filter {
				continue
			}
			shown++
			cmd.Printf("\n%s %s at %s\n", labelStyle.Render("•"), c.Position, c.Company)
			cmd.Printf("  %s %s | %s %s | %s P%d\n",
				labelStyle.Render("ID:"), c.ID,
				labelStyle.Render("Status:"), c.Status,
				labelStyle.Render("Priority:"), c.Priority)
			if c.Location != "" {
				cmd.Printf("  %s %s\n", labelStyle.Render("Location:"), c.Location)
			}
			if !c.ReminderDate.IsZero() {
				cmd.Printf("  %s %s\n", labelStyle.Render("Reminder:"), c.ReminderDate)
			}
			cmd.Printf("  %s %s\n", labelStyle.Render("Added:"), c.CreatedAt.Format("Jan 2, 2006"))
		}
		if shown == 0 {
			cmd.Printf("No candidatures with status '%s'\n", filter)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one candidature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		c, ok := a.Store.FindByID(args[0])
		if !ok {
			return fmt.Errorf("candidature %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Println(titleStyle.Render(c.Position + " at " + c.Company))
		cmd.Printf("%s %s\n", labelStyle.Render("ID:"), c.ID)
		cmd.Printf("%s %s (%s column)\n", labelStyle.Render("Status:"), c.Status, pipeline.ColumnOf(c.Status))
		cmd.Printf("%s %d\n", labelStyle.Render("Priority:"), c.Priority)
		if c.Location != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Location:"), c.Location)
		}
		if c.Source != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Source:"), c.Source)
		}
		if !c.ReminderDate.IsZero() {
			cmd.Printf("%s %s\n", labelStyle.Render("Reminder:"), c.ReminderDate)
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Created:"), c.CreatedAt.Format("Jan 2, 2006"))
		if c.Notes != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Notes:"), c.Notes)
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a candidature",
	Args:  cobra.ExactArgs(1),
	Example: `  jobpipe update 1755000000123 --status sent
  jobpipe update 1755000000123 --notes "Recruiter call went well" --priority 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		c, ok := a.Store.FindByID(args[0])
		if !ok {
			return fmt.Errorf("candidature %s: %w", args[0], app.ErrNotFound)
		}

		if cmd.Flags().Changed("status") {
			s, _ := cmd.Flags().GetString("status")
			status := models.Status(s)
			if !status.Valid() {
				return fmt.Errorf("invalid status %q, must be one of %v: %w", s, models.AllStatuses, app.ErrInvalidArgument)
			}
			c.Status = status
		}
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetInt("priority")
			if err := validPriority(p); err != nil {
				return err
			}
			c.Priority = p
		}
		if cmd.Flags().Changed("notes") {
			c.Notes, _ = cmd.Flags().GetString("notes")
		}
		if cmd.Flags().Changed("location") {
			c.Location, _ = cmd.Flags().GetString("location")
		}
		if cmd.Flags().Changed("source") {
			c.Source, _ = cmd.Flags().GetString("source")
		}
		if cmd.Flags().Changed("remind") {
			r, _ := cmd.Flags().GetString("remind")
			if r == "" {
				c.ReminderDate = models.CalDate{}
			} else {
				d, err := parseCalDate(r)
				if err != nil {
					return err
				}
				c.ReminderDate = d
			}
		}

		a.Store.Update(c)
		cmd.Printf("✓ Candidature updated (status: %s)\n", c.Status)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a candidature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		if _, ok := a.Store.FindByID(args[0]); !ok {
			return fmt.Errorf("candidature %s: %w", args[0], app.ErrNotFound)
		}
		a.Store.Delete(args[0])
		cmd.Println("✓ Candidature deleted")
		return nil
	},
}

// validPriority enforces the 1-3 priority rank at the flag boundary
func validPriority(p int) error {
	if p < 1 || p > 3 {
		return fmt.Errorf("invalid priority %d, must be 1-3: %w", p, app.ErrInvalidArgument)
	}
	return nil
}

// parseCalDate accepts the wire format (DD/MM/YYYY) or YYYY-MM-DD
func parseCalDate(s string) (models.CalDate, error) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return models.CalDateOf(t), nil
		}
	}
	return models.CalDate{}, fmt.Errorf("invalid date %q, use DD/MM/YYYY: %w", s, app.ErrInvalidArgument)
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)

	addCmd.Flags().String("company", "", "Company name (required)")
	addCmd.Flags().String("position", "", "Position title (required)")
	addCmd.Flags().String("location", "", "Location")
	addCmd.Flags().String("source", "manual", "Where the posting came from")
	addCmd.Flags().String("notes", "", "Free-form notes")
	addCmd.Flags().Int("priority", 2, "Priority rank (1 highest, 3 lowest)")
	addCmd.Flags().String("remind", "", "Reminder date (DD/MM/YYYY)")

	listCmd.Flags().String("status", "", "Filter by status")

	updateCmd.Flags().String("status", "", "New status")
	updateCmd.Flags().Int("priority", 0, "Priority rank (1-3)")
	updateCmd.Flags().String("notes", "", "Free-form notes")
	updateCmd.Flags().String("location", "", "Location")
	updateCmd.Flags().String("source", "", "Source")
	updateCmd.Flags().String("remind", "", "Reminder date (DD/MM/YYYY), empty clears")
}
