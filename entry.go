package aurora

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Entry is one scheduled activity of a day.
type Entry struct {
	ID       string   // unique within its day
	Time     string   // "HH:MM"
	Location string   // free text, an optional "(...)" suffix is a detail
	Category Category // drives the badge and label
	Note     string   // optional, may span several lines
}

// Draft holds the editable fields of an Entry, it is what the add and edit
// forms carry before a save.
type Draft struct {
	Time     string
	Location string
	Category Category
	Note     string
}

// DraftOf returns a draft preloaded with e's fields, to edit it.
func DraftOf(e Entry) Draft {
	return Draft{Time: e.Time, Location: e.Location, Category: e.Category, Note: e.Note}
}

// Valid reports whether the draft can be saved: a HH:MM time and a location
// are required.
func (d Draft) Valid() bool {
	return ValidTime(d.Time) && strings.TrimSpace(d.Location) != ""
}

// ValidTime reports whether s is a clock time written HH:MM.
func ValidTime(s string) bool {
	_, err := time.Parse(clockLayout, s)
	return err == nil
}

const clockLayout = "15:04"

// entry builds the entry identified by id. Fields are stored as typed.
func (d Draft) entry(id string) Entry {
	return Entry{
		ID:       id,
		Time:     d.Time,
		Location: d.Location,
		Category: d.Category,
		Note:     d.Note,
	}
}

// Clock returns the hour and minute of the entry.
func (e Entry) Clock() (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, e.Time)
	if err != nil {
		return 0, 0, fmt.Errorf("entry %q: invalid time %q: %w", e.ID, e.Time, err)
	}
	return t.Hour(), t.Minute(), nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("time", e.Time)
	w.Append("location", e.Location)
	w.Append("category", e.Category)
	w.Optional("note", e.Note)
	return w.MarshalJSON()
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	// jentry is the persisted shape of an entry.
	var jentry struct {
		ID       string   `json:"id"`
		Time     string   `json:"time"`
		Location string   `json:"location"`
		Category Category `json:"category"`
		Note     string   `json:"note"`
	}
	if err := json.Unmarshal(b, &jentry); err != nil {
		return err
	}
	if jentry.ID == "" {
		return fmt.Errorf("entry at %q has no id", jentry.Time)
	}
	*e = Entry(jentry)
	return nil
}
