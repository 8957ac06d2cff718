package rules

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/quentinv/jobpipe/pkg/models"
)

// matches reports whether every condition holds for c. Conditions are
// AND-only; a malformed condition fails closed to false, never errors.
func matches(c models.Candidature, conds []models.Condition, now time.Time, log *slog.Logger) bool {
	for _, cond := range conds {
		if !conditionMet(c, cond, now, log) {
			return false
		}
	}
	return true
}

func conditionMet(c models.Candidature, cond models.Condition, now time.Time, log *slog.Logger) bool {
	switch cond.Operator {
	case models.OpEquals, models.OpNotEquals, models.OpContains:
		v, ok := stringField(c, cond.Field)
		if !ok {
			log.Warn("condition references unknown field", "field", string(cond.Field))
			return false
		}
		switch cond.Operator {
		case models.OpEquals:
			return v == cond.Value
		case models.OpNotEquals:
			return v != cond.Value
		default:
			return strings.Contains(strings.ToLower(v), strings.ToLower(cond.Value))
		}

	case models.OpDaysSince:
		date, ok := dateField(c, cond.Field)
		if !ok {
			log.Warn("days_since on non-date field", "field", string(cond.Field))
			return false
		}
		if date.IsZero() {
			return false
		}
		n, err := strconv.Atoi(cond.Value)
		if err != nil {
			log.Warn("days_since with non-numeric value", "value", cond.Value)
			return false
		}
		return int(now.Sub(date).Hours()/24) >= n

	default:
		log.Warn("condition uses unknown operator", "operator", string(cond.Operator))
		return false
	}
}

// stringField resolves the closed set of string-comparable fields
func stringField(c models.Candidature, f models.Field) (string, bool) {
	switch f {
	case models.FieldStatus:
		return string(c.Status), true
	case models.FieldCompany:
		return c.Company, true
	case models.FieldPosition:
		return c.Position, true
	case models.FieldLocation:
		return c.Location, true
	case models.FieldSource:
		return c.Source, true
	case models.FieldNotes:
		return c.Notes, true
	case models.FieldPriority:
		return strconv.Itoa(c.Priority), true
	default:
		return "", false
	}
}

// dateField resolves the closed set of date fields
func dateField(c models.Candidature, f models.Field) (time.Time, bool) {
	switch f {
	case models.FieldCreated:
		return c.CreatedAt, true
	case models.FieldReminder:
		return c.ReminderDate.Time, true
	default:
		return time.Time{}, false
	}
}
