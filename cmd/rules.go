package cmd

import (
	"fmt"

	"github.com/quentinv/jobpipe/internal/app"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage automation rules",
	Long:  "List, enable, and disable the automation rules that react to status changes and time",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List automation rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		cmd.Println(titleStyle.Render("Automation Rules"))
		for _, r := range a.Rules.Rules() {
			state := "enabled"
			if !r.Enabled {
				state = "disabled"
			}
			cmd.Printf("\n%s %s (%s)\n", labelStyle.Render("•"), r.Name, state)
			cmd.Printf("  %s %s | %s %s\n",
				labelStyle.Render("ID:"), r.ID,
				labelStyle.Render("Trigger:"), r.Trigger)
			for _, c := range r.Conditions {
				cmd.Printf("  %s %s %s %q\n", labelStyle.Render("When:"), c.Field, c.Operator, c.Value)
			}
			for _, act := range r.Actions {
				cmd.Printf("  %s %s\n", labelStyle.Render("Then:"), act.Kind)
			}
			cmd.Printf("  %s %d", labelStyle.Render("Executions:"), r.Executions)
			if !r.LastExecuted.IsZero() {
				cmd.Printf(" (last: %s)", r.LastExecuted.Format("Jan 2, 2006 15:04"))
			}
			cmd.Println()
		}
		return nil
	},
}

var rulesEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleRule(cmd, args[0], true) },
}

var rulesDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleRule(cmd, args[0], false) },
}

func toggleRule(cmd *cobra.Command, id string, enabled bool) error {
	a := app.FromContext(cmd.Context())
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	if !a.Rules.Enable(id, enabled) {
		return fmt.Errorf("rule %s: %w", id, app.ErrNotFound)
	}
	if enabled {
		cmd.Printf("✓ Rule %s enabled\n", id)
	} else {
		cmd.Printf("✓ Rule %s disabled\n", id)
	}
	return nil
}

var rulesSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the time-based rules once now",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.FromContext(cmd.Context())
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		a.Rules.RunSweep()
		cmd.Println("✓ Sweep complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesEnableCmd)
	rulesCmd.AddCommand(rulesDisableCmd)
	rulesCmd.AddCommand(rulesSweepCmd)
}
