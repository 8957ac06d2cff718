package rules

import (
	"fmt"
	"log/slog"

	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/internal/notify"
	"github.com/quentinv/jobpipe/internal/reminders"
	"github.com/quentinv/jobpipe/internal/store"
	"github.com/quentinv/jobpipe/pkg/models"
)

// Executor performs rule actions against the store, the reminder
// scheduler, and the notification sink
type Executor struct {
	store *store.Store
	sched *reminders.Scheduler
	sink  *notify.Sink
	clk   clock.Clock
	log   *slog.Logger
}

// Run executes every action in order. A failed action is logged and
// isolated; the remaining actions still run.
func (x *Executor) Run(rule *models.AutomationRule, c models.Candidature) {
	for _, a := range rule.Actions {
		if err := x.apply(a, c); err != nil {
			x.log.Warn("rule action failed", "rule", rule.ID, "action", string(a.Kind), "error", err)
		}
	}
}

func (x *Executor) apply(a models.Action, c models.Candidature) error {
	switch a.Kind {
	case models.ActionNotify:
		x.sink.Add(models.NotifInfo, a.Title, a.Message, c.ID)
		return nil

	case models.ActionScheduleReminder:
		date := models.CalDateOf(x.clk.Now()).AddDays(a.DelayDays)
		detail := fmt.Sprintf("%s, %s", c.Company, c.Position)
		x.sched.AddDerived(a.Description, detail, date, c.ID)
		return nil

	case models.ActionSetStatus:
		if !a.Status.Valid() {
			return fmt.Errorf("invalid target status %q", a.Status)
		}
		cur, ok := x.store.FindByID(c.ID)
		if !ok {
			return fmt.Errorf("candidature %s no longer exists", c.ID)
		}
		if cur.Status == a.Status {
			return nil
		}
		cur.Status = a.Status
		// Re-enters the store synchronously; the resulting event runs
		// the same evaluation chain against the new snapshot.
		x.store.Update(cur)
		return nil

	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
}
