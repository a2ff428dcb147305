package aurora

import (
	"errors"
	"fmt"

	"github.com/etnz/aurora/date"
	"go.uber.org/zap"
)

// ErrUnknownDate is returned when selecting a date that is not a trip date.
var ErrUnknownDate = errors.New("not a trip date")

// ErrNotFound is returned when an id does not match any record.
var ErrNotFound = errors.New("not found")

// Session is the state of one use of the planner: the persisted features and
// the transient selected date, which is never saved.
type Session struct {
	Itinerary *Store
	Expenses  *Ledger
	Checklist *Checklist

	selected date.Date
}

// OpenSession opens every feature from st. The selected date is the first trip date.
func OpenSession(st Storage, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		Itinerary: OpenStore(st, log),
		Expenses:  OpenLedger(st, log),
		Checklist: OpenChecklist(st, log),
		selected:  TripDates()[0],
	}
}

// Selected returns the selected date.
func (s *Session) Selected() date.Date { return s.selected }

// Select changes the selected date.
func (s *Session) Select(d date.Date) error {
	if !IsTripDate(d) {
		return fmt.Errorf("cannot select %v: %w", d, ErrUnknownDate)
	}
	s.selected = d
	return nil
}

// Day returns the entries of the selected date.
func (s *Session) Day() []Entry { return s.Itinerary.Day(s.selected) }

// ShiftDay moves the selected day's content to the adjacent date in dir,
// the selection follows the content.
func (s *Session) ShiftDay(dir ShiftDirection) (bool, error) {
	target, ok, err := s.Itinerary.ShiftDay(s.selected, dir)
	if ok {
		s.selected = target
	}
	return ok, err
}
