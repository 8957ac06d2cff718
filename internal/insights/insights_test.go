package insights

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/internal/store"
	"github.com/quentinv/jobpipe/pkg/models"
)

// testGenerator wires a generator over an emptied store so each test
// controls the dataset exactly
func testGenerator(t *testing.T, weeklyGoal int) (*Generator, *store.Store, *clock.Fake, *blob.Store) {
	t.Helper()
	kv, err := blob.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open blob store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	clk := clock.NewFake(time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))

	st := store.Open(kv, clk, lg)
	for _, c := range st.All() {
		st.Delete(c.ID)
	}
	return New(st, kv, clk, lg, weeklyGoal), st, clk, kv
}

func find(g *Generator, id string) (models.Suggestion, bool) {
	for _, s := range g.Suggestions() {
		if s.ID == id {
			return s, true
		}
	}
	return models.Suggestion{}, false
}

func TestSweepIsIdempotent(t *testing.T) {
	g, st, _, _ := testGenerator(t, 0)
	id := st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Status: models.StatusDiscussing})

	g.Sweep()
	g.Sweep()

	seen := map[string]int{}
	for _, s := range g.Suggestions() {
		seen[s.ID]++
	}
	if seen["interview_prep:"+id] != 1 {
		t.Errorf("expected exactly one interview_prep suggestion, got %d", seen["interview_prep:"+id])
	}
	for sid, n := range seen {
		if n > 1 {
			t.Errorf("duplicate suggestion %s", sid)
		}
	}
}

func TestStaleSuggestionPrunedAfterADay(t *testing.T) {
	g, st, clk, _ := testGenerator(t, 0)
	id := st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Status: models.StatusDiscussing})

	g.Sweep()
	if _, ok := find(g, "interview_prep:"+id); !ok {
		t.Fatal("interview_prep suggestion missing")
	}

	// Heuristic stops matching; the entry survives until it ages out
	c, _ := st.FindByID(id)
	c.Status = models.StatusDeclined
	st.Update(c)
	clk.Advance(2 * time.Hour)
	g.Sweep()
	if _, ok := find(g, "interview_prep:"+id); !ok {
		t.Error("fresh suggestion should survive a sweep it no longer matches")
	}

	clk.Advance(23 * time.Hour)
	g.Sweep()
	if _, ok := find(g, "interview_prep:"+id); ok {
		t.Error("suggestion older than a day should be pruned")
	}
}

func TestStillTrueHeuristicOutlivesPrune(t *testing.T) {
	g, st, clk, _ := testGenerator(t, 0)
	id := st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Status: models.StatusDiscussing})

	g.Sweep()
	clk.Advance(25 * time.Hour)
	g.Sweep()

	s, ok := find(g, "interview_prep:"+id)
	if !ok {
		t.Fatal("still-true heuristic should re-yield its suggestion")
	}
	if !s.CreatedAt.Equal(clk.Now()) {
		t.Errorf("refresh should stamp the sweep time, got %v", s.CreatedAt)
	}
}

func TestSuggestionsOrderedByPriority(t *testing.T) {
	g, st, clk, _ := testGenerator(t, 0)
	st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Status: models.StatusDiscussing})
	st.Insert(models.Candidature{
		Company: "Globex", Position: "SRE",
		Status: models.StatusSent, CreatedAt: clk.Now().AddDate(0, 0, -10),
	})

	g.Sweep()
	got := g.Suggestions()
	if len(got) < 2 {
		t.Fatalf("expected at least 2 suggestions, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Priority > got[i-1].Priority {
			t.Fatalf("suggestions out of priority order at %d: %d after %d", i, got[i].Priority, got[i-1].Priority)
		}
	}
	if got[0].Kind != "interview_prep" {
		t.Errorf("top suggestion = %s, expected interview_prep", got[0].Kind)
	}
}

func TestDismissalSuppressesForADay(t *testing.T) {
	g, st, clk, _ := testGenerator(t, 0)
	id := st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Status: models.StatusDiscussing})
	key := "interview_prep:" + id

	g.Sweep()
	if !g.Dismiss(key) {
		t.Fatal("dismiss failed")
	}
	if _, ok := find(g, key); ok {
		t.Fatal("dismissed suggestion still listed")
	}
	if g.Dismiss("ghost") {
		t.Error("dismissing an unknown id should report false")
	}

	// Re-sweeping while the dismissal is fresh keeps it suppressed
	g.Sweep()
	if _, ok := find(g, key); ok {
		t.Error("dismissed suggestion came back on the next sweep")
	}

	// Once the dismissal ages out, a still-true heuristic resurfaces
	clk.Advance(25 * time.Hour)
	g.Sweep()
	if _, ok := find(g, key); !ok {
		t.Error("still-true heuristic should resurface after the dismissal expires")
	}
}

func TestDismissalSurvivesRestart(t *testing.T) {
	g, st, clk, kv := testGenerator(t, 0)
	id := st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Status: models.StatusDiscussing})
	key := "interview_prep:" + id

	g.Sweep()
	if !g.Dismiss(key) {
		t.Fatal("dismiss failed")
	}

	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	g2 := New(st, kv, clk, lg, 0)
	g2.Sweep()
	if _, ok := find(g2, key); ok {
		t.Error("dismissal should persist across generator restarts")
	}
}

func TestFollowUpWindow(t *testing.T) {
	g, st, clk, _ := testGenerator(t, 0)
	now := clk.Now()

	inWindow := st.Insert(models.Candidature{
		Company: "Mid", Position: "Dev",
		Status: models.StatusSent, CreatedAt: now.AddDate(0, 0, -8),
	})
	tooFresh := st.Insert(models.Candidature{
		Company: "Fresh", Position: "Dev",
		Status: models.StatusSent, CreatedAt: now.AddDate(0, 0, -3),
	})
	tooOld := st.Insert(models.Candidature{
		Company: "Old", Position: "Dev",
		Status: models.StatusSent, CreatedAt: now.AddDate(0, 0, -20),
	})

	g.Sweep()
	if _, ok := find(g, "follow_up:"+inWindow); !ok {
		t.Error("8-day-old sent application should get a follow-up nudge")
	}
	if _, ok := find(g, "follow_up:"+tooFresh); ok {
		t.Error("3-day-old application is too fresh for a follow-up")
	}
	if _, ok := find(g, "follow_up:"+tooOld); ok {
		t.Error("20-day-old application is past the follow-up window")
	}
}

func TestSourceDiversityDominantSource(t *testing.T) {
	g, st, _, _ := testGenerator(t, 0)

	for i := 0; i < 4; i++ {
		st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Source: "linkedin"})
	}
	st.Insert(models.Candidature{Company: "Globex", Position: "SRE", Source: "referral"})

	g.Sweep()
	if _, ok := find(g, "source_diversity"); !ok {
		t.Error("4 of 5 from one source should raise the diversity suggestion")
	}
}

func TestSourceDiversityNotRaisedWhenSpread(t *testing.T) {
	g, st, _, _ := testGenerator(t, 0)

	for i := 0; i < 3; i++ {
		st.Insert(models.Candidature{Company: "Acme", Position: "Dev", Source: "linkedin"})
	}
	st.Insert(models.Candidature{Company: "Globex", Position: "SRE", Source: "referral"})
	st.Insert(models.Candidature{Company: "Initech", Position: "Dev", Source: "jobboard"})

	g.Sweep()
	if _, ok := find(g, "source_diversity"); ok {
		t.Error("3-1-1 source spread should not raise the diversity suggestion")
	}
}

func TestDatasetHeuristics(t *testing.T) {
	g, st, clk, _ := testGenerator(t, 5)
	now := clk.Now()

	// Five declined applications from one source, one sent this week
	for i := 0; i < 5; i++ {
		st.Insert(models.Candidature{
			Company: "Acme", Position: "Dev", Source: "linkedin",
			Status: models.StatusDeclined, CreatedAt: now.AddDate(0, 0, -30),
		})
	}
	st.Insert(models.Candidature{
		Company: "Globex", Position: "SRE", Source: "linkedin",
		Status: models.StatusSent, CreatedAt: now.AddDate(0, 0, -2),
	})

	g.Sweep()

	if s, ok := find(g, "weekly_volume"); !ok {
		t.Error("below-goal week should raise the volume suggestion")
	} else if s.Detail != "1 of 5 applications sent this week." {
		t.Errorf("volume detail = %q", s.Detail)
	}
	if _, ok := find(g, "source_diversity"); !ok {
		t.Error("single-source pipeline should raise the diversity suggestion")
	}
	if _, ok := find(g, "refusal_ratio"); !ok {
		t.Error("all-declined outcomes should raise the refusal suggestion")
	}
}
