package rules

import "github.com/quentinv/jobpipe/pkg/models"

// seedRules is the fixed rule set created at startup. Enabled state and
// execution bookkeeping are the only persisted parts; the definitions
// themselves always come from here.
func seedRules() []*models.AutomationRule {
	return []*models.AutomationRule{
		{
			ID:      "follow_up_reminder",
			Name:    "Schedule a follow-up after sending",
			Enabled: true,
			Trigger: models.TriggerStatusChange,
			Conditions: []models.Condition{
				{Field: models.FieldStatus, Operator: models.OpEquals, Value: string(models.StatusSent)},
			},
			Actions: []models.Action{
				{Kind: models.ActionScheduleReminder, DelayDays: 7, Description: "Follow up"},
			},
		},
		{
			ID:      "acceptance_note",
			Name:    "Flag accepted offers",
			Enabled: true,
			Trigger: models.TriggerStatusChange,
			Conditions: []models.Condition{
				{Field: models.FieldStatus, Operator: models.OpEquals, Value: string(models.StatusAccepted)},
			},
			Actions: []models.Action{
				{Kind: models.ActionNotify, Title: "Offer accepted", Message: "An application reached the accepted stage. Time to close out the rest of the pipeline."},
			},
		},
		{
			ID:      "priority_decline_review",
			Name:    "Review high-priority declines",
			Enabled: true,
			Trigger: models.TriggerStatusChange,
			Conditions: []models.Condition{
				{Field: models.FieldStatus, Operator: models.OpEquals, Value: string(models.StatusDeclined)},
				{Field: models.FieldPriority, Operator: models.OpEquals, Value: "1"},
			},
			Actions: []models.Action{
				{Kind: models.ActionNotify, Title: "High-priority decline", Message: "A top-priority application was declined. Worth a short retrospective."},
			},
		},
		{
			ID:      "stale_pending_alert",
			Name:    "Alert on stale pending applications",
			Enabled: true,
			Trigger: models.TriggerTimeBased,
			Conditions: []models.Condition{
				{Field: models.FieldStatus, Operator: models.OpEquals, Value: string(models.StatusPending)},
				{Field: models.FieldCreated, Operator: models.OpDaysSince, Value: "14"},
			},
			Actions: []models.Action{
				{Kind: models.ActionNotify, Title: "No news in two weeks", Message: "A pending application has had no update for 14 days. Consider reaching out."},
			},
		},
		{
			ID:      "expire_stale_drafts",
			Name:    "Expire drafts older than a month",
			Enabled: false,
			Trigger: models.TriggerTimeBased,
			Conditions: []models.Condition{
				{Field: models.FieldStatus, Operator: models.OpEquals, Value: string(models.StatusDraft)},
				{Field: models.FieldCreated, Operator: models.OpDaysSince, Value: "30"},
			},
			Actions: []models.Action{
				{Kind: models.ActionSetStatus, Status: models.StatusDeclined},
				{Kind: models.ActionNotify, Title: "Draft expired", Message: "A draft older than 30 days was closed out."},
			},
		},
	}
}
