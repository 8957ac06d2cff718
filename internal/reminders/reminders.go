package reminders

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/internal/store"
	"github.com/quentinv/jobpipe/pkg/models"
)

// Scheduler owns manual and rule-derived reminders and their due state
type Scheduler struct {
	kv    blob.KV
	clk   clock.Clock
	log   *slog.Logger
	items []models.Reminder
}

// Open loads persisted reminders; corrupt or missing data yields an
// empty set
func Open(kv blob.KV, clk clock.Clock, log *slog.Logger) *Scheduler {
	s := &Scheduler{kv: kv, clk: clk, log: log}

	data, ok, err := kv.Get(blob.KeyReminders)
	if err != nil {
		log.Warn("failed to read reminders", "error", err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		log.Warn("corrupt reminder data, starting empty", "error", err)
		s.items = nil
	}
	return s
}

// AddManual creates a user-entered reminder
func (s *Scheduler) AddManual(title, description string, date models.CalDate) models.Reminder {
	r := models.Reminder{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Date:        date,
		Origin:      models.OriginManual,
		CreatedAt:   s.clk.Now(),
	}
	s.items = append(s.items, r)
	s.persist()
	return r
}

// AddDerived creates a rule-derived reminder tied to a candidature
func (s *Scheduler) AddDerived(title, description string, date models.CalDate, candidatureID string) models.Reminder {
	r := models.Reminder{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   description,
		Date:          date,
		Origin:        models.OriginDerived,
		CandidatureID: candidatureID,
		CreatedAt:     s.clk.Now(),
	}
	s.items = append(s.items, r)
	s.persist()
	return r
}

// Complete sets the completion flag on a reminder
func (s *Scheduler) Complete(id string, completed bool) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Completed = completed
			s.persist()
			return true
		}
	}
	return false
}

// Delete removes a manual reminder. Targeting a derived reminder is a
// logged no-op, not an error: derived reminders are recomputed from
// their source candidature and only disappear with it.
func (s *Scheduler) Delete(id string) bool {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].Origin == models.OriginDerived {
			s.log.Info("ignoring delete of derived reminder", "id", id)
			return false
		}
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		s.persist()
		return true
	}
	return false
}

// Pending returns incomplete reminders, ascending by date
func (s *Scheduler) Pending() []models.Reminder {
	var out []models.Reminder
	for _, r := range s.items {
		if !r.Completed {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

// Completed returns completed reminders, descending by date
func (s *Scheduler) Completed() []models.Reminder {
	var out []models.Reminder
	for _, r := range s.items {
		if r.Completed {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date.Time)
	})
	return out
}

// Overdue reports whether r is dated strictly before the start of the
// current calendar day and not completed
func (s *Scheduler) Overdue(r models.Reminder) bool {
	if r.Completed || r.Date.IsZero() {
		return false
	}
	today := models.CalDateOf(s.clk.Now())
	return r.Date.Before(today.Time)
}

// FindByID returns the reminder with the given id
func (s *Scheduler) FindByID(id string) (models.Reminder, bool) {
	for _, r := range s.items {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reminder{}, false
}

func (s *Scheduler) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Warn("failed to marshal reminders", "error", err)
		return
	}
	if err := s.kv.Put(blob.KeyReminders, data); err != nil {
		s.log.Warn("failed to persist reminders", "error", err)
	}
}

// syncID is the stable id of the derived reminder mirroring a
// candidature's own reminder date
func syncID(candidatureID string) string {
	return "cand-" + candidatureID
}

// OnStoreEvent keeps one derived reminder in sync per candidature that
// carries a reminder date: recomputed on change, removed when the date
// clears or the candidature is deleted. Hand-edits do not survive a
// recompute on purpose.
func (s *Scheduler) OnStoreEvent(ev store.Event) {
	switch ev.Op {
	case store.OpDelete:
		s.removeSync(ev.Before.ID)
	case store.OpInsert, store.OpUpdate:
		s.syncCandidature(*ev.After)
	}
}

// SyncAll reconciles derived reminders against a full snapshot, used at
// startup before any events flow
func (s *Scheduler) SyncAll(snapshot []models.Candidature) {
	for _, c := range snapshot {
		s.syncCandidature(c)
	}
}

func (s *Scheduler) syncCandidature(c models.Candidature) {
	id := syncID(c.ID)
	if c.ReminderDate.IsZero() {
		s.removeSync(c.ID)
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].Date.Equal(c.ReminderDate.Time) {
				s.items[i].Date = c.ReminderDate
				s.items[i].Completed = false
				s.persist()
			}
			return
		}
	}
	s.items = append(s.items, models.Reminder{
		ID:            id,
		Title:         "Follow up with " + c.Company,
		Description:   c.Position,
		Date:          c.ReminderDate,
		Origin:        models.OriginDerived,
		CandidatureID: c.ID,
		CreatedAt:     s.clk.Now(),
	})
	s.persist()
}

func (s *Scheduler) removeSync(candidatureID string) {
	id := syncID(candidatureID)
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}
