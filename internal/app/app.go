package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/internal/config"
	"github.com/quentinv/jobpipe/internal/insights"
	"github.com/quentinv/jobpipe/internal/notify"
	"github.com/quentinv/jobpipe/internal/pipeline"
	"github.com/quentinv/jobpipe/internal/reminders"
	"github.com/quentinv/jobpipe/internal/rules"
	"github.com/quentinv/jobpipe/internal/store"
)

// App is the dependency container for the CLI application
type App struct {
	Blob      *blob.Store
	Config    *config.Config
	Clock     clock.Clock
	Log       *slog.Logger
	Store     *store.Store
	Rules     *rules.Engine
	Insights  *insights.Generator
	Reminders *reminders.Scheduler
	Inbox     *notify.Sink
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	b, err := blob.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	a := assemble(b, config.AppConfig, clock.Real(), log)
	a.Blob = b
	return a, nil
}

// assemble wires the engine components in dependency order. Kept apart
// from NewApp so tests can build an isolated instance on a temp blob
// store and a fake clock.
func assemble(kv blob.KV, cfg *config.Config, clk clock.Clock, log *slog.Logger) *App {
	sink := notify.Open(kv, clk, log)
	sched := reminders.Open(kv, clk, log)
	st := store.Open(kv, clk, log)

	// Subscriber order: derived-reminder sync first, then rule
	// evaluation; both run synchronously inside every mutation.
	st.Subscribe(sched.OnStoreEvent)
	engine := rules.New(st, sched, sink, kv, clk, log)

	sched.SyncAll(st.All())

	return &App{
		Config:    cfg,
		Clock:     clk,
		Log:       log,
		Store:     st,
		Rules:     engine,
		Insights:  insights.New(st, kv, clk, log, cfg.WeeklyGoal),
		Reminders: sched,
		Inbox:     sink,
	}
}

// Assemble builds an App on explicit dependencies; used by tests
func Assemble(kv blob.KV, cfg *config.Config, clk clock.Clock, log *slog.Logger) *App {
	return assemble(kv, cfg, clk, log)
}

// Capacities converts the configured column limits
func (a *App) Capacities() pipeline.Capacities {
	caps := pipeline.Capacities{}
	for col, n := range a.Config.Capacities {
		caps[pipeline.Column(col)] = n
	}
	return caps
}

// MoveCandidature applies a board move: the legality check and the
// status update happen in one call, atomic from the caller's view.
// Returns false when the move is illegal or the id is unknown.
func (a *App) MoveCandidature(id string, to pipeline.Column) bool {
	c, ok := a.Store.FindByID(id)
	if !ok {
		return false
	}
	from := pipeline.ColumnOf(c.Status)
	if !pipeline.CanMove(c, from, to, a.Store.All(), a.Capacities()) {
		return false
	}
	next := pipeline.StatusForColumn(to, c.Status)
	if next == c.Status {
		// Same column, or an already decided candidature entering
		// finalized: nothing to persist.
		return true
	}
	c.Status = next
	a.Store.Update(c)
	return true
}

// SweepTasks returns the periodic sweeps for the watch command
func (a *App) SweepTasks() []clock.Task {
	return []clock.Task{
		{
			Name:         "rules",
			InitialDelay: 10 * time.Second,
			Every:        time.Duration(a.Config.RuleSweepMinutes) * time.Minute,
			Run:          a.Rules.RunSweep,
		},
		{
			Name:         "insights",
			InitialDelay: 5 * time.Second,
			Every:        time.Duration(a.Config.InsightSweepMinutes) * time.Minute,
			Run:          a.Insights.Sweep,
		},
	}
}

// Close closes all resources
func (a *App) Close() error {
	if a.Blob != nil {
		return a.Blob.Close()
	}
	return nil
}
