package notify

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/pkg/models"
)

// Sink is the append-only notification feed. Only the read flag ever
// changes after a notification is added.
type Sink struct {
	kv    blob.KV
	clk   clock.Clock
	log   *slog.Logger
	items []models.Notification
}

// Open loads persisted notifications; corrupt or missing data yields an
// empty feed
func Open(kv blob.KV, clk clock.Clock, log *slog.Logger) *Sink {
	s := &Sink{kv: kv, clk: clk, log: log}

	data, ok, err := kv.Get(blob.KeyNotifications)
	if err != nil {
		log.Warn("failed to read notifications", "error", err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		log.Warn("corrupt notification data, starting empty", "error", err)
		s.items = nil
	}
	return s
}

// Add appends a notification and returns it
func (s *Sink) Add(kind models.NotificationKind, title, message, candidatureID string) models.Notification {
	n := models.Notification{
		ID:            uuid.NewString(),
		Kind:          kind,
		Title:         title,
		Message:       message,
		CreatedAt:     s.clk.Now(),
		CandidatureID: candidatureID,
	}
	s.items = append(s.items, n)
	s.persist()
	return n
}

// All returns notifications newest first
func (s *Sink) All() []models.Notification {
	out := make([]models.Notification, len(s.items))
	for i, n := range s.items {
		out[len(s.items)-1-i] = n
	}
	return out
}

// UnreadCount returns how many notifications are unread
func (s *Sink) UnreadCount() int {
	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead flags one notification as read
func (s *Sink) MarkRead(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			s.persist()
			return true
		}
	}
	return false
}

// MarkAllRead flags every notification as read
func (s *Sink) MarkAllRead() {
	for i := range s.items {
		s.items[i].Read = true
	}
	s.persist()
}

func (s *Sink) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Warn("failed to marshal notifications", "error", err)
		return
	}
	if err := s.kv.Put(blob.KeyNotifications, data); err != nil {
		s.log.Warn("failed to persist notifications", "error", err)
	}
}
