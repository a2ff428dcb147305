package aurora

import (
	"slices"
	"strings"
	"sync"

	"github.com/etnz/aurora/date"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MoveDirection is the direction of an entry reorder within a day.
type MoveDirection int

const (
	Up   MoveDirection = -1
	Down MoveDirection = +1
)

// ShiftDirection is the direction of a day shift.
type ShiftDirection int

const (
	Earlier ShiftDirection = -1
	Later   ShiftDirection = +1
)

// Store is the itinerary of the trip: the Schedule, its editing operations
// and its persistence. Every mutation is saved under KeySchedule before the
// call returns.
//
// Operations that cannot apply (empty draft, unknown id, out of range index,
// first or last day) are silent no-ops and report false.
type Store struct {
	mu          sync.Mutex
	schedule    Schedule
	dates       []date.Date // trip dates, sorted
	storage     Storage
	log         *zap.Logger
	subscribers map[int]func(Schedule)
	nextSub     int
	newID       func() string
}

// OpenStore loads the schedule from st, or the bundled itinerary if there
// is none or if it cannot be parsed.
func OpenStore(st Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		schedule:    loadOrDefault(st, KeySchedule, DecodeSchedule, DefaultSchedule, log),
		dates:       TripDates(),
		storage:     st,
		log:         log,
		subscribers: make(map[int]func(Schedule)),
		newID:       shortID,
	}
}

// shortID returns a short random id, like "3f9a1c0b2".
func shortID() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:9] }

// Schedule returns a copy of the whole schedule.
func (s *Store) Schedule() Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.Clone()
}

// Day returns a copy of the entries of d, nil if d has none.
func (s *Store) Day(d date.Date) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.schedule[d])
}

// Entry returns the entry id of day d.
func (s *Store) Entry(d date.Date, id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.schedule.index(d, id)
	if i < 0 {
		return Entry{}, false
	}
	return s.schedule[d][i], true
}

// Subscribe registers f to be called with a copy of the schedule after every
// committed change. It returns the function that unregisters f.
func (s *Store) Subscribe(f func(Schedule)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = f
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// AddEntry appends a new entry built from draft at the end of day d.
// Time and location are required, otherwise nothing happens.
func (s *Store) AddEntry(d date.Date, draft Draft) (Entry, bool, error) {
	if !draft.Valid() {
		return Entry{}, false, nil
	}
	s.mu.Lock()
	id := s.freshID(d)
	e := draft.entry(id)
	s.schedule[d] = append(s.schedule[d], e)
	err := s.commit()
	return e, true, err
}

// freshID returns an id not used in day d.
func (s *Store) freshID(d date.Date) string {
	for {
		id := s.newID()
		if id != "" && s.schedule.index(d, id) < 0 {
			return id
		}
	}
}

// UpdateEntry replaces entry id of day d with draft, keeping the id.
func (s *Store) UpdateEntry(d date.Date, id string, draft Draft) (bool, error) {
	if !draft.Valid() {
		return false, nil
	}
	s.mu.Lock()
	i := s.schedule.index(d, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	day := slices.Clone(s.schedule[d])
	day[i] = draft.entry(id)
	s.schedule[d] = day
	return true, s.commit()
}

// RemoveEntry deletes entry id of day d once c confirmed it.
// A declined confirmation leaves the schedule untouched.
func (s *Store) RemoveEntry(d date.Date, id string, c Confirmer) (bool, error) {
	if _, ok := s.Entry(d, id); !ok {
		return false, nil
	}
	// Never hold the lock while the user is thinking.
	if !c.Confirm("確定要刪除此行程嗎？") {
		return false, nil
	}
	s.mu.Lock()
	i := s.schedule.index(d, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.schedule[d] = slices.Delete(slices.Clone(s.schedule[d]), i, i+1)
	return true, s.commit()
}

// MoveEntry swaps the entry at index with its neighbour in direction dir.
// Moving the first entry up or the last one down does nothing.
func (s *Store) MoveEntry(d date.Date, index int, dir MoveDirection) (bool, error) {
	s.mu.Lock()
	day := s.schedule[d]
	target := index + int(dir)
	if index < 0 || index >= len(day) || target < 0 || target >= len(day) {
		s.mu.Unlock()
		return false, nil
	}
	day = slices.Clone(day)
	day[index], day[target] = day[target], day[index]
	s.schedule[d] = day
	return true, s.commit()
}

// ShiftDay swaps the whole content of day current with the adjacent trip date
// in direction dir, and returns that date: the content moves, the date labels
// and the date keyed weather stay.
//
// Shifting the first day earlier, the last day later, or a date that is not
// part of the trip does nothing and returns current.
func (s *Store) ShiftDay(current date.Date, dir ShiftDirection) (date.Date, bool, error) {
	i := slices.Index(s.dates, current)
	target := i + int(dir)
	if i < 0 || target < 0 || target >= len(s.dates) {
		return current, false, nil
	}
	other := s.dates[target]

	s.mu.Lock()
	// Both dates end up present, possibly with an empty list.
	a, b := s.schedule[current], s.schedule[other]
	if a == nil {
		a = []Entry{}
	}
	if b == nil {
		b = []Entry{}
	}
	s.schedule[current], s.schedule[other] = b, a
	return other, true, s.commit()
}

// Reset restores the bundled itinerary.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.schedule = DefaultSchedule()
	return s.commit()
}

// commit saves the schedule and notifies subscribers.
// It must be called with s.mu held and releases it.
func (s *Store) commit() error {
	snapshot := s.schedule.Clone()
	subscribers := make([]func(Schedule), 0, len(s.subscribers))
	for _, f := range s.subscribers {
		subscribers = append(subscribers, f)
	}
	err := save(s.storage, KeySchedule, EncodeSchedule, snapshot)
	s.mu.Unlock()

	if err != nil {
		s.log.Error("cannot save schedule", zap.Error(err))
		return err
	}
	for _, f := range subscribers {
		f(snapshot.Clone())
	}
	return nil
}
