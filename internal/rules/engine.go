package rules

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/internal/notify"
	"github.com/quentinv/jobpipe/internal/reminders"
	"github.com/quentinv/jobpipe/internal/store"
	"github.com/quentinv/jobpipe/pkg/models"
)

// Engine holds the automation rules and evaluates them: status-change
// rules synchronously on store events, time-based rules on RunSweep.
type Engine struct {
	kv    blob.KV
	clk   clock.Clock
	log   *slog.Logger
	exec  *Executor
	store *store.Store
	rules []*models.AutomationRule
}

// ruleState is the persisted bookkeeping for one rule
type ruleState struct {
	ID           string    `json:"id"`
	Enabled      bool      `json:"enabled"`
	Executions   int       `json:"executions"`
	LastExecuted time.Time `json:"last_executed"`
}

// New builds the engine from the seed rule set, restores persisted
// bookkeeping, and subscribes to the store
func New(st *store.Store, sched *reminders.Scheduler, sink *notify.Sink, kv blob.KV, clk clock.Clock, log *slog.Logger) *Engine {
	e := &Engine{
		kv:    kv,
		clk:   clk,
		log:   log,
		store: st,
		rules: seedRules(),
		exec:  &Executor{store: st, sched: sched, sink: sink, clk: clk, log: log},
	}
	e.loadState()
	st.Subscribe(e.onStoreEvent)
	return e
}

// onStoreEvent evaluates status-change rules. Only updates whose status
// actually changed trigger evaluation: never inserts, deletes, or no-op
// updates.
func (e *Engine) onStoreEvent(ev store.Event) {
	if ev.Op != store.OpUpdate {
		return
	}
	if ev.Before.Status == ev.After.Status {
		return
	}

	c := *ev.After
	now := e.clk.Now()
	fired := false
	for _, r := range e.rules {
		if !r.Enabled || r.Trigger != models.TriggerStatusChange {
			continue
		}
		if !matches(c, r.Conditions, now, e.log) {
			continue
		}
		e.fire(r, c, now)
		fired = true
	}
	if fired {
		e.persistState()
	}
}

// RunSweep evaluates every enabled time-based rule against every
// current candidature, firing independently per match
func (e *Engine) RunSweep() {
	now := e.clk.Now()
	snapshot := e.store.All()
	fired := false
	for _, r := range e.rules {
		if !r.Enabled || r.Trigger != models.TriggerTimeBased {
			continue
		}
		for _, c := range snapshot {
			if !matches(c, r.Conditions, now, e.log) {
				continue
			}
			e.fire(r, c, now)
			fired = true
		}
	}
	if fired {
		e.persistState()
	}
}

// fire counts the execution and runs the actions. The counter records
// that the rule fired, not that every action succeeded: partial action
// failure is logged by the executor and still counts.
func (e *Engine) fire(r *models.AutomationRule, c models.Candidature, now time.Time) {
	r.Executions++
	r.LastExecuted = now
	e.exec.Run(r, c)
}

// Enable toggles a rule; returns false for an unknown id
func (e *Engine) Enable(id string, enabled bool) bool {
	for _, r := range e.rules {
		if r.ID == id {
			r.Enabled = enabled
			e.persistState()
			return true
		}
	}
	return false
}

// Rules returns a copy of the rule set in definition order
func (e *Engine) Rules() []models.AutomationRule {
	out := make([]models.AutomationRule, len(e.rules))
	for i, r := range e.rules {
		out[i] = *r
	}
	return out
}

// loadState merges persisted enabled flags and counters into the seed
// set. Persisted ids with no seed counterpart are ignored.
func (e *Engine) loadState() {
	data, ok, err := e.kv.Get(blob.KeyAutomation)
	if err != nil {
		e.log.Warn("failed to read rule state", "error", err)
		return
	}
	if !ok {
		return
	}
	var states []ruleState
	if err := json.Unmarshal(data, &states); err != nil {
		e.log.Warn("corrupt rule state, keeping seed defaults", "error", err)
		return
	}
	byID := make(map[string]ruleState, len(states))
	for _, st := range states {
		byID[st.ID] = st
	}
	for _, r := range e.rules {
		if st, ok := byID[r.ID]; ok {
			r.Enabled = st.Enabled
			r.Executions = st.Executions
			r.LastExecuted = st.LastExecuted
		}
	}
}

func (e *Engine) persistState() {
	states := make([]ruleState, len(e.rules))
	for i, r := range e.rules {
		states[i] = ruleState{ID: r.ID, Enabled: r.Enabled, Executions: r.Executions, LastExecuted: r.LastExecuted}
	}
	data, err := json.Marshal(states)
	if err != nil {
		e.log.Warn("failed to marshal rule state", "error", err)
		return
	}
	if err := e.kv.Put(blob.KeyAutomation, data); err != nil {
		e.log.Warn("failed to persist rule state", "error", err)
	}
}
