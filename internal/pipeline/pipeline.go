package pipeline

import "github.com/quentinv/jobpipe/pkg/models"

// Column is a derived visual grouping of candidatures by pipeline stage
type Column string

const (
	ColumnDraft      Column = "draft"
	ColumnSent       Column = "sent"
	ColumnPending    Column = "pending"
	ColumnDiscussing Column = "discussing"
	ColumnFinalized  Column = "finalized"
)

// Order is the fixed linear column order used for move legality
var Order = []Column{ColumnDraft, ColumnSent, ColumnPending, ColumnDiscussing, ColumnFinalized}

// FallbackOutcome is the status a candidature resolves to when it enters
// the finalized column without an explicit accept or decline.
// TODO: product call pending on whether this should prompt instead of
// silently declining.
const FallbackOutcome = models.StatusDeclined

// Capacities limits how many candidatures a column may hold; zero or a
// missing entry means unlimited
type Capacities map[Column]int

// ColumnOf maps a status to its column. Total over all valid statuses;
// declined and accepted both land in finalized.
func ColumnOf(s models.Status) Column {
	switch s {
	case models.StatusDraft:
		return ColumnDraft
	case models.StatusSent:
		return ColumnSent
	case models.StatusPending:
		return ColumnPending
	case models.StatusDiscussing:
		return ColumnDiscussing
	default:
		return ColumnFinalized
	}
}

func indexOf(col Column) int {
	for i, c := range Order {
		if c == col {
			return i
		}
	}
	return -1
}

// CanMove reports whether moving c from one column to another is legal.
// Same-column reorders are always allowed. Cross-column moves are denied
// when the target is at capacity, and otherwise legal iff the target is
// at most one step behind the current column.
func CanMove(c models.Candidature, from, to Column, snapshot []models.Candidature, caps Capacities) bool {
	if from == to {
		return true
	}

	if limit := caps[to]; limit > 0 && countIn(snapshot, to) >= limit {
		return false
	}

	cur, tgt := indexOf(from), indexOf(to)
	if cur < 0 || tgt < 0 {
		return false
	}
	return tgt >= cur-1
}

// StatusForColumn resolves the status a candidature takes when dropped
// into a column. Entering finalized keeps an already decided status and
// otherwise falls back to the default outcome.
func StatusForColumn(to Column, current models.Status) models.Status {
	switch to {
	case ColumnDraft:
		return models.StatusDraft
	case ColumnSent:
		return models.StatusSent
	case ColumnPending:
		return models.StatusPending
	case ColumnDiscussing:
		return models.StatusDiscussing
	default:
		if current == models.StatusAccepted || current == models.StatusDeclined {
			return current
		}
		return FallbackOutcome
	}
}

// ColumnView is the on-demand board projection for one column
type ColumnView struct {
	Column Column
	Items  []models.Candidature
}

// Columns projects a snapshot into the five fixed columns, preserving
// snapshot order within each column
func Columns(snapshot []models.Candidature) []ColumnView {
	views := make([]ColumnView, len(Order))
	for i, col := range Order {
		views[i] = ColumnView{Column: col}
	}
	for _, c := range snapshot {
		i := indexOf(ColumnOf(c.Status))
		views[i].Items = append(views[i].Items, c)
	}
	return views
}

func countIn(snapshot []models.Candidature, col Column) int {
	n := 0
	for _, c := range snapshot {
		if ColumnOf(c.Status) == col {
			n++
		}
	}
	return n
}
