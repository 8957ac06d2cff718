package pipeline

import (
	"testing"

	"github.com/quentinv/jobpipe/pkg/models"
)

func TestColumnOfIsTotal(t *testing.T) {
	tests := []struct {
		status models.Status
		column Column
	}{
		{models.StatusDraft, ColumnDraft},
		{models.StatusSent, ColumnSent},
		{models.StatusPending, ColumnPending},
		{models.StatusDiscussing, ColumnDiscussing},
		{models.StatusDeclined, ColumnFinalized},
		{models.StatusAccepted, ColumnFinalized},
	}

	for _, tt := range tests {
		if got := ColumnOf(tt.status); got != tt.column {
			t.Errorf("ColumnOf(%s) = %s, expected %s", tt.status, got, tt.column)
		}
	}
}

func TestCanMove(t *testing.T) {
	c := models.Candidature{ID: "1", Status: models.StatusPending}

	tests := []struct {
		name string
		from Column
		to   Column
		want bool
	}{
		{"same column reorder", ColumnPending, ColumnPending, true},
		{"one step forward", ColumnPending, ColumnDiscussing, true},
		{"forward jump to finalized", ColumnDraft, ColumnFinalized, true},
		{"one step back", ColumnPending, ColumnSent, true},
		{"two steps back", ColumnDiscussing, ColumnSent, false},
		{"back to draft from pending", ColumnPending, ColumnDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanMove(c, tt.from, tt.to, nil, nil)
			if got != tt.want {
				t.Errorf("CanMove(%s -> %s) = %v, expected %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanMoveDeniesFullColumn(t *testing.T) {
	snapshot := []models.Candidature{
		{ID: "a", Status: models.StatusDiscussing},
		{ID: "b", Status: models.StatusDiscussing},
	}
	caps := Capacities{ColumnDiscussing: 2}
	c := models.Candidature{ID: "c", Status: models.StatusPending}

	if CanMove(c, ColumnPending, ColumnDiscussing, snapshot, caps) {
		t.Error("move into a full column should be denied")
	}
	// Same-column reorder ignores capacity
	if !CanMove(snapshot[0], ColumnDiscussing, ColumnDiscussing, snapshot, caps) {
		t.Error("same-column reorder must always be legal")
	}
	// Unlimited when no capacity configured
	if !CanMove(c, ColumnPending, ColumnDiscussing, snapshot, Capacities{}) {
		t.Error("move should be legal without a configured capacity")
	}
}

func TestStatusForColumn(t *testing.T) {
	tests := []struct {
		name    string
		to      Column
		current models.Status
		want    models.Status
	}{
		{"draft column", ColumnDraft, models.StatusSent, models.StatusDraft},
		{"sent column", ColumnSent, models.StatusDraft, models.StatusSent},
		{"finalized keeps accepted", ColumnFinalized, models.StatusAccepted, models.StatusAccepted},
		{"finalized keeps declined", ColumnFinalized, models.StatusDeclined, models.StatusDeclined},
		{"finalized without outcome falls back", ColumnFinalized, models.StatusDiscussing, FallbackOutcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForColumn(tt.to, tt.current); got != tt.want {
				t.Errorf("StatusForColumn(%s, %s) = %s, expected %s", tt.to, tt.current, got, tt.want)
			}
		})
	}
}

func TestColumnsProjection(t *testing.T) {
	snapshot := []models.Candidature{
		{ID: "1", Status: models.StatusDraft},
		{ID: "2", Status: models.StatusAccepted},
		{ID: "3", Status: models.StatusDeclined},
		{ID: "4", Status: models.StatusSent},
		{ID: "5", Status: models.StatusSent},
	}

	views := Columns(snapshot)
	if len(views) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(views))
	}

	byColumn := map[Column][]models.Candidature{}
	for _, v := range views {
		byColumn[v.Column] = v.Items
	}

	if len(byColumn[ColumnFinalized]) != 2 {
		t.Errorf("finalized should aggregate accepted and declined, got %d items", len(byColumn[ColumnFinalized]))
	}
	if len(byColumn[ColumnSent]) != 2 {
		t.Errorf("sent column has %d items, expected 2", len(byColumn[ColumnSent]))
	}
	// Snapshot order preserved within a column
	if byColumn[ColumnSent][0].ID != "4" || byColumn[ColumnSent][1].ID != "5" {
		t.Error("column items out of snapshot order")
	}
}
