package clock

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func waitForRun(t *testing.T, ran <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ran:
		if got != want {
			t.Fatalf("task %q ran, expected %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("task %q did not run", want)
	}
}

func TestRunHonorsDelayAndInterval(t *testing.T) {
	clk := NewFake(time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	ran := make(chan string, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx, clk, lg, Task{
			Name:         "sweep",
			InitialDelay: 10 * time.Second,
			Every:        time.Minute,
			Run:          func() { ran <- "sweep" },
		})
		close(done)
	}()

	clk.BlockUntil(1)
	clk.Advance(9 * time.Second)
	select {
	case <-ran:
		t.Fatal("task ran before its initial delay")
	default:
	}

	clk.Advance(time.Second)
	waitForRun(t, ran, "sweep")

	clk.BlockUntil(1)
	clk.Advance(time.Minute)
	waitForRun(t, ran, "sweep")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop on cancel")
	}
}

func TestRunFiresTasksInDueOrder(t *testing.T) {
	clk := NewFake(time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	ran := make(chan string, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, clk, lg,
		Task{Name: "late", InitialDelay: 10 * time.Second, Every: time.Hour, Run: func() { ran <- "late" }},
		Task{Name: "early", InitialDelay: 5 * time.Second, Every: time.Hour, Run: func() { ran <- "early" }},
	)

	clk.BlockUntil(1)
	clk.Advance(5 * time.Second)
	waitForRun(t, ran, "early")

	clk.BlockUntil(1)
	clk.Advance(5 * time.Second)
	waitForRun(t, ran, "late")
}
