package notify

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/quentinv/jobpipe/internal/blob"
	"github.com/quentinv/jobpipe/internal/clock"
	"github.com/quentinv/jobpipe/pkg/models"
)

func testSink(t *testing.T) (*Sink, *blob.Store, *clock.Fake) {
	t.Helper()
	kv, err := blob.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open blob store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	clk := clock.NewFake(time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	return Open(kv, clk, slog.New(slog.NewTextHandler(io.Discard, nil))), kv, clk
}

func TestAddAndOrder(t *testing.T) {
	s, _, _ := testSink(t)

	first := s.Add(models.NotifInfo, "first", "m1", "")
	second := s.Add(models.NotifReminder, "second", "m2", "c1")

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Error("notifications not ordered newest first")
	}
	if all[0].CandidatureID != "c1" {
		t.Errorf("candidature id = %q, expected c1", all[0].CandidatureID)
	}
}

func TestReadFlags(t *testing.T) {
	s, _, _ := testSink(t)

	a := s.Add(models.NotifInfo, "a", "", "")
	s.Add(models.NotifInfo, "b", "", "")

	if got := s.UnreadCount(); got != 2 {
		t.Fatalf("unread = %d, expected 2", got)
	}
	if !s.MarkRead(a.ID) {
		t.Fatal("mark read failed")
	}
	if got := s.UnreadCount(); got != 1 {
		t.Errorf("unread = %d after one mark, expected 1", got)
	}
	if s.MarkRead("ghost") {
		t.Error("marking an unknown id should report false")
	}
	s.MarkAllRead()
	if got := s.UnreadCount(); got != 0 {
		t.Errorf("unread = %d after mark all, expected 0", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, kv, clk := testSink(t)

	n := s.Add(models.NotifSuccess, "saved", "payload", "c9")
	s.MarkRead(n.ID)

	s2 := Open(kv, clk, slog.New(slog.NewTextHandler(io.Discard, nil)))
	all := s2.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 notification after reload, got %d", len(all))
	}
	got := all[0]
	if got.Kind != models.NotifSuccess || got.Title != "saved" || got.Message != "payload" ||
		got.CandidatureID != "c9" || !got.Read {
		t.Errorf("reloaded notification differs: %+v", got)
	}
}
