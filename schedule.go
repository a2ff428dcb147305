package aurora

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/aurora/date"
)

// Schedule maps a date to its ordered entries. The order of a day is the
// itinerary sequence.
//
// A date mapped to an empty list and a date missing from the map are two
// different states, both have no itinerary.
type Schedule map[date.Date][]Entry

// Clone returns a deep copy of s.
func (s Schedule) Clone() Schedule {
	c := make(Schedule, len(s))
	for d, entries := range s {
		c[d] = append(make([]Entry, 0, len(entries)), entries...)
	}
	return c
}

// Dates returns the dates present in s, sorted.
func (s Schedule) Dates() []date.Date {
	dates := make([]date.Date, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	date.Sort(dates)
	return dates
}

// index returns the position of the entry id in day d, or -1.
func (s Schedule) index(d date.Date, id string) int {
	for i, e := range s[d] {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// EncodeSchedule writes s as an indented JSON object, days in chronological order.
func EncodeSchedule(w io.Writer, s Schedule) error {
	var jw jsonObjectWriter
	for _, d := range s.Dates() {
		entries := s[d]
		if entries == nil {
			entries = []Entry{} // keep the empty day, not null
		}
		jw.Append(d.String(), entries)
	}
	raw, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode schedule: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("cannot encode schedule: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

// DecodeSchedule reads a schedule written by EncodeSchedule.
// A day with twice the same id is rejected.
func DecodeSchedule(r io.Reader) (Schedule, error) {
	var s Schedule
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("cannot decode schedule: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("cannot decode schedule: null document")
	}
	for d, entries := range s {
		if entries == nil {
			s[d] = []Entry{}
		}
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			if seen[e.ID] {
				return nil, fmt.Errorf("cannot decode schedule: duplicated id %q on %v", e.ID, d)
			}
			seen[e.ID] = true
		}
	}
	return s, nil
}

//go:embed defaults/schedule.json
var defaultSchedule []byte

// DefaultSchedule returns the bundled itinerary.
func DefaultSchedule() Schedule {
	s, err := DecodeSchedule(bytes.NewReader(defaultSchedule))
	if err != nil {
		panic(fmt.Sprintf("bundled schedule is broken: %v", err))
	}
	return s
}
