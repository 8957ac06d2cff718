package store

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"strconv"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/pkg/models"
)

// Op is the kind of mutation an Event reports
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes one completed mutation. Snapshot is the immutable
// post-mutation list; subscribers must never be handed a live reference.
type Event struct {
	Op       Op
	Before   *models.Candidature // nil on insert
	After    *models.Candidature // nil on delete
	Snapshot []models.Candidature
}

// Subscriber is called synchronously after every mutation
type Subscriber func(Event)

// Store is the authoritative in-memory candidature list. The backing
// slice is replaced, never mutated in place, so snapshots held by
// earlier readers stay valid. Persistence through the blob store is
// synchronous and best-effort; in-memory state is authoritative.
type Store struct {
	kv    blob.KV
	clk   clock.Clock
	log   *slog.Logger
	items []models.Candidature
	subs  []Subscriber
}

// Open loads the candidature list from the blob store. A missing key
// yields the seed dataset; a corrupt value is logged and replaced with
// the seed, never a fatal error.
func Open(kv blob.KV, clk clock.Clock, log *slog.Logger) *Store {
	s := &Store{kv: kv, clk: clk, log: log}

	data, ok, err := kv.Get(blob.KeyCandidatures)
	if err != nil {
		log.Warn("failed to read candidatures, using seed", "error", err)
		s.items = seedCandidatures(clk)
		return s
	}
	if !ok {
		s.items = seedCandidatures(clk)
		s.persist()
		return s
	}

	var items []models.Candidature
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("corrupt candidature data, using seed", "error", err)
		s.items = seedCandidatures(clk)
		s.persist()
		return s
	}
	s.items = items
	return s
}

// Subscribe registers fn to be called synchronously on every mutation
func (s *Store) Subscribe(fn Subscriber) {
	s.subs = append(s.subs, fn)
}

// All returns the current snapshot. The slice is immutable by contract:
// every write replaces it, so callers may hold it across mutations.
func (s *Store) All() []models.Candidature {
	return s.items
}

// FindByID returns a copy of the candidature with the given id
func (s *Store) FindByID(id string) (models.Candidature, bool) {
	for _, c := range s.items {
		if c.ID == id {
			return c, true
		}
	}
	return models.Candidature{}, false
}

// Insert adds a candidature and returns its id. A fresh id is assigned
// when none is given or the given one collides.
func (s *Store) Insert(c models.Candidature) string {
	if c.ID == "" || s.exists(c.ID) {
		c.ID = s.newID()
	}
	if c.Status == "" {
		c.Status = models.StatusDraft
	}
	if c.Priority < 1 || c.Priority > 3 {
		c.Priority = 2
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.clk.Now()
	}

	next := make([]models.Candidature, len(s.items)+1)
	copy(next, s.items)
	next[len(s.items)] = c
	s.items = next

	s.persist()
	s.notify(Event{Op: OpInsert, After: &c, Snapshot: s.items})
	return c.ID
}

// Update replaces the candidature with the same id. An unknown id is a
// logged no-op, not an error.
func (s *Store) Update(c models.Candidature) {
	idx := s.indexOf(c.ID)
	if idx < 0 {
		s.log.Warn("update on unknown candidature", "id", c.ID)
		return
	}
	before := s.items[idx]

	next := make([]models.Candidature, len(s.items))
	copy(next, s.items)
	next[idx] = c
	s.items = next

	s.persist()
	s.notify(Event{Op: OpUpdate, Before: &before, After: &c, Snapshot: s.items})
}

// Delete removes the candidature with the given id. An unknown id is a
// logged no-op.
func (s *Store) Delete(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		s.log.Warn("delete on unknown candidature", "id", id)
		return
	}
	before := s.items[idx]

	next := make([]models.Candidature, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next

	s.persist()
	s.notify(Event{Op: OpDelete, Before: &before, Snapshot: s.items})
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.items {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) exists(id string) bool {
	return s.indexOf(id) >= 0
}

// newID derives an id from the current time plus a random offset so
// rapid successive inserts do not collide
func (s *Store) newID() string {
	for {
		id := strconv.FormatInt(s.clk.Now().UnixMilli()+rand.Int63n(1_000_000), 10)
		if !s.exists(id) {
			return id
		}
	}
}

// persist writes the full list synchronously. Failure is logged and the
// mutation stands: the next successful write persists current state.
func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Warn("failed to marshal candidatures", "error", err)
		return
	}
	if err := s.kv.Put(blob.KeyCandidatures, data); err != nil {
		s.log.Warn("failed to persist candidatures", "error", err)
	}
}

func (s *Store) notify(ev Event) {
	for _, fn := range s.subs {
		fn(ev)
	}
}
