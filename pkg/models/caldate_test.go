package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCalDateRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		date CalDate
		wire string
	}{
		{
			name: "regular date",
			date: NewCalDate(2026, time.March, 5),
			wire: `"05/03/2026"`,
		},
		{
			name: "end of year",
			date: NewCalDate(2025, time.December, 31),
			wire: `"31/12/2025"`,
		},
		{
			name: "unset date",
			date: CalDate{},
			wire: `""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.date)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(data) != tt.wire {
				t.Errorf("marshal = %s, expected %s", data, tt.wire)
			}

			var back CalDate
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !back.Equal(tt.date.Time) {
				t.Errorf("round-trip = %v, expected %v", back, tt.date)
			}
		})
	}
}

func TestCalDateUnmarshalRejectsGarbage(t *testing.T) {
	var d CalDate
	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestCalDateAddDays(t *testing.T) {
	d := NewCalDate(2026, time.February, 26)
	got := d.AddDays(7)
	want := NewCalDate(2026, time.March, 5)
	if !got.Equal(want.Time) {
		t.Errorf("AddDays(7) = %v, expected %v", got, want)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if Status("bogus").Valid() {
		t.Error("bogus status should not be valid")
	}
}
