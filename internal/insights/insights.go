package insights

import (
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/internal/store"
	"github.com/quentinv/jobpipe/pkg/models"
)

// maxAge prunes suggestions older than a day at every sweep,
// dismissible or not. Dismissals age out on the same window, so a
// still-true heuristic resurfaces after a day.
const maxAge = 24 * time.Hour

// Generator computes the ranked suggestion feed from heuristics over a
// store snapshot. Suggestion ids are derived from the heuristic and the
// candidature, so re-computation dedupes by construction. Dismissed
// keys are persisted; the feed itself is recomputed on demand.
type Generator struct {
	store       *store.Store
	kv          blob.KV
	clk         clock.Clock
	log         *slog.Logger
	weeklyGoal  int
	suggestions map[string]models.Suggestion
	dismissed   map[string]time.Time
}

// New builds a generator; weeklyGoal is the target number of sends per
// rolling week used by the volume heuristic
func New(st *store.Store, kv blob.KV, clk clock.Clock, log *slog.Logger, weeklyGoal int) *Generator {
	g := &Generator{
		store:       st,
		kv:          kv,
		clk:         clk,
		log:         log,
		weeklyGoal:  weeklyGoal,
		suggestions: make(map[string]models.Suggestion),
		dismissed:   make(map[string]time.Time),
	}
	g.loadDismissed()
	return g
}

// Sweep replaces the suggestion set with existing non-expired entries
// plus newly computed ones, upserted by identity key. Same-key entries
// are refreshed so a still-true heuristic outlives the prune window.
// Dismissed keys are suppressed until the dismissal itself ages out.
func (g *Generator) Sweep() {
	now := g.clk.Now()

	for id, s := range g.suggestions {
		if now.Sub(s.CreatedAt) > maxAge {
			delete(g.suggestions, id)
		}
	}
	expired := false
	for id, at := range g.dismissed {
		if now.Sub(at) > maxAge {
			delete(g.dismissed, id)
			expired = true
		}
	}
	if expired {
		g.persistDismissed()
	}

	snapshot := g.store.All()
	for _, c := range snapshot {
		for _, h := range perCandidature {
			s, ok := h.eval(c, now)
			if !ok {
				continue
			}
			s.ID = h.id + ":" + c.ID
			if _, gone := g.dismissed[s.ID]; gone {
				continue
			}
			s.Kind = h.id
			s.CandidatureID = c.ID
			s.CreatedAt = now
			g.suggestions[s.ID] = s
		}
	}
	for _, h := range dataset {
		s, ok := h.eval(snapshot, now, g.weeklyGoal)
		if !ok {
			continue
		}
		s.ID = h.id
		if _, gone := g.dismissed[s.ID]; gone {
			continue
		}
		s.Kind = h.id
		s.CreatedAt = now
		g.suggestions[s.ID] = s
	}
}

// Suggestions returns the feed ordered by descending priority
func (g *Generator) Suggestions() []models.Suggestion {
	out := make([]models.Suggestion, 0, len(g.suggestions))
	for _, s := range g.suggestions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Dismiss removes a dismissible suggestion and records the key so the
// next sweeps keep it suppressed; a still-true heuristic may reappear
// once the dismissal ages out
func (g *Generator) Dismiss(id string) bool {
	s, ok := g.suggestions[id]
	if !ok || !s.Dismissible {
		return false
	}
	delete(g.suggestions, id)
	g.dismissed[id] = g.clk.Now()
	g.persistDismissed()
	return true
}

func (g *Generator) loadDismissed() {
	data, ok, err := g.kv.Get(blob.KeyDismissed)
	if err != nil {
		g.log.Warn("failed to read dismissed suggestions", "error", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, &g.dismissed); err != nil {
		g.log.Warn("corrupt dismissed data, starting empty", "error", err)
		g.dismissed = make(map[string]time.Time)
	}
}

func (g *Generator) persistDismissed() {
	data, err := json.Marshal(g.dismissed)
	if err != nil {
		g.log.Warn("failed to marshal dismissed suggestions", "error", err)
		return
	}
	if err := g.kv.Put(blob.KeyDismissed, data); err != nil {
		g.log.Warn("failed to persist dismissed suggestions", "error", err)
	}
}
