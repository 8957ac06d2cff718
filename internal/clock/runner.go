package clock

import (
	"context"
	"log/slog"
	"time"
)

// Task is a recurring sweep bound to the runner's context
type Task struct {
	Name         string
	InitialDelay time.Duration
	Every        time.Duration
	Run          func()
}

// Run drives all tasks from a single goroutine until ctx is canceled.
// Scheduling goes through clk, so tests advance a fake clock instead of
// sleeping. Tasks never overlap: each sweep runs to completion before
// the next due task fires.
func Run(ctx context.Context, clk Clock, log *slog.Logger, tasks ...Task) {
	if len(tasks) == 0 {
		return
	}

	next := make([]time.Time, len(tasks))
	now := clk.Now()
	for i, t := range tasks {
		next[i] = now.Add(t.InitialDelay)
	}

	for {
		// Find the earliest due task
		earliest := 0
		for i := range next {
			if next[i].Before(next[earliest]) {
				earliest = i
			}
		}

		wait := next[earliest].Sub(clk.Now())
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-clk.After(wait):
		}

		task := tasks[earliest]
		log.Debug("running sweep", "task", task.Name)
		task.Run()
		next[earliest] = clk.Now().Add(task.Every)
	}
}
