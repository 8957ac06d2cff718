package models

import (
	"fmt"
	"strings"
	"time"
)

// calDateLayout is the wire format for calendar-only dates
const calDateLayout = "02/01/2006"

// CalDate is a calendar date with no time-of-day. It serializes as
// DD/MM/YYYY and an unset date round-trips as the empty string.
type CalDate struct {
	time.Time
}

// NewCalDate builds a date at midnight UTC
func NewCalDate(year int, month time.Month, day int) CalDate {
	return CalDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// CalDateOf truncates t to its calendar date
func CalDateOf(t time.Time) CalDate {
	return NewCalDate(t.Year(), t.Month(), t.Day())
}

// AddDays returns the date n days later
func (d CalDate) AddDays(n int) CalDate {
	return CalDateOf(d.AddDate(0, 0, n))
}

// String formats as DD/MM/YYYY, or "" when unset
func (d CalDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(calDateLayout)
}

func (d CalDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *CalDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = CalDate{}
		return nil
	}
	t, err := time.Parse(calDateLayout, s)
	if err != nil {
		return fmt.Errorf("parse calendar date %q: %w", s, err)
	}
	*d = CalDate{t}
	return nil
}
