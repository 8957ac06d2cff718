package clock

import (
	"sync"
	"time"
)

// Clock supplies "now" and timer channels so age, overdue, and sweep
// scheduling are testable without sleeping
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Real returns the wall clock
func Real() Clock {
	return realClock{}
}

// Fake is a manually advanced clock for tests. After channels fire when
// Advance or Set moves the clock past their deadline.
type Fake struct {
	mu      sync.Mutex
	t       time.Time
	waiters []fakeWaiter
}

type fakeWaiter struct {
	at time.Time
	ch chan time.Time
}

// NewFake returns a fake clock frozen at t
func NewFake(t time.Time) *Fake {
	return &Fake{t: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- f.t
		return ch
	}
	f.waiters = append(f.waiters, fakeWaiter{at: f.t.Add(d), ch: ch})
	return ch
}

// Advance moves the clock forward by d, firing any due waiters
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
	f.fireLocked()
}

// Set jumps the clock to t, firing any due waiters
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
	f.fireLocked()
}

// BlockUntil returns once at least n waiters are parked on the clock,
// so a test can advance time only after the code under test is waiting
func (f *Fake) BlockUntil(n int) {
	for {
		f.mu.Lock()
		waiting := len(f.waiters)
		f.mu.Unlock()
		if waiting >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (f *Fake) fireLocked() {
	kept := f.waiters[:0]
	for _, w := range f.waiters {
		if w.at.After(f.t) {
			kept = append(kept, w)
			continue
		}
		w.ch <- f.t
	}
	f.waiters = kept
}
