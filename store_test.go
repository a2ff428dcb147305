package aurora

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/etnz/aurora/date"
	"github.com/google/go-cmp/cmp"
)

var (
	feb18 = date.New(2024, 2, 18)
	feb19 = date.New(2024, 2, 19)
	feb20 = date.New(2024, 2, 20)
	mar02 = date.New(2024, 3, 2)
)

// openTestStore returns a store over a memory storage holding s, with
// predictable ids "n1", "n2"...
func openTestStore(t *testing.T, s Schedule) (*Store, *MemStorage) {
	t.Helper()
	st := NewMemStorage()
	if s != nil {
		var buf bytes.Buffer
		if err := EncodeSchedule(&buf, s); err != nil {
			t.Fatalf("EncodeSchedule() unexpected error: %v", err)
		}
		if err := st.Save(KeySchedule, buf.Bytes()); err != nil {
			t.Fatalf("Save() unexpected error: %v", err)
		}
	}
	store := OpenStore(st, nil)
	n := 0
	store.newID = func() string {
		n++
		return fmt.Sprintf("n%d", n)
	}
	return store, st
}

func ids(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestAddEntry(t *testing.T) {
	store, _ := openTestStore(t, Schedule{
		feb18: {{ID: "18-1", Time: "23:55", Location: "TPE", Category: Transport}},
	})
	store.newID = shortID

	e, ok, err := store.AddEntry(feb18, Draft{Time: "09:00", Location: "Hotel", Category: Scenery})
	if err != nil || !ok {
		t.Fatalf("AddEntry() = %v, %v, want true, nil", ok, err)
	}
	day := store.Day(feb18)
	if len(day) != 2 {
		t.Fatalf("len(Day()) = %d, want 2", len(day))
	}
	if day[1] != e {
		t.Errorf("last entry = %v, want the new one %v", day[1], e)
	}
	if e.ID == "" || e.ID == "18-1" {
		t.Errorf("new entry id = %q, want a fresh id", e.ID)
	}
}

func TestAddEntryNoop(t *testing.T) {
	testCases := []struct {
		name  string
		draft Draft
	}{
		{"empty", Draft{}},
		{"no time", Draft{Location: "Hotel"}},
		{"no location", Draft{Time: "09:00"}},
		{"blank location", Draft{Time: "09:00", Location: "   "}},
		{"not a clock time", Draft{Time: "morning", Location: "Hotel"}},
		{"out of range time", Draft{Time: "25:00", Location: "Hotel"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, st := openTestStore(t, nil)
			before := store.Schedule()
			_, ok, err := store.AddEntry(feb18, tc.draft)
			if ok || err != nil {
				t.Errorf("AddEntry() = %v, %v, want false, nil", ok, err)
			}
			if diff := cmp.Diff(before, store.Schedule()); diff != "" {
				t.Errorf("schedule changed (-before +after):\n%s", diff)
			}
			if st.Saves() != 0 {
				t.Errorf("Saves() = %d, want 0", st.Saves())
			}
		})
	}
}

func TestAddEntryCreatesDay(t *testing.T) {
	store, _ := openTestStore(t, Schedule{})
	if _, ok, _ := store.AddEntry(feb20, Draft{Time: "10:00", Location: "Granville Island"}); !ok {
		t.Fatal("AddEntry() = false, want true")
	}
	if got := ids(store.Day(feb20)); !slices.Equal(got, []string{"n1"}) {
		t.Errorf("Day() ids = %v, want [n1]", got)
	}
}

func TestFreshIDAvoidsCollision(t *testing.T) {
	store, _ := openTestStore(t, Schedule{
		feb18: {{ID: "n1", Time: "08:00", Location: "A"}},
	})
	e, _, _ := store.AddEntry(feb18, Draft{Time: "09:00", Location: "B"})
	if e.ID != "n2" {
		t.Errorf("AddEntry() id = %q, want %q", e.ID, "n2")
	}
}

func TestUpdateEntry(t *testing.T) {
	store, _ := openTestStore(t, Schedule{
		feb18: {
			{ID: "a", Time: "08:00", Location: "A", Category: Food},
			{ID: "b", Time: "09:00", Location: "B", Category: Food},
		},
	})
	ok, err := store.UpdateEntry(feb18, "a", Draft{Time: "07:30", Location: " Airport", Category: Transport, Note: "early"})
	if !ok || err != nil {
		t.Fatalf("UpdateEntry() = %v, %v, want true, nil", ok, err)
	}
	want := []Entry{
		{ID: "a", Time: "07:30", Location: " Airport", Category: Transport, Note: "early"},
		{ID: "b", Time: "09:00", Location: "B", Category: Food},
	}
	if diff := cmp.Diff(want, store.Day(feb18)); diff != "" {
		t.Errorf("Day() mismatch (-want +got):\n%s", diff)
	}

	if ok, _ := store.UpdateEntry(feb18, "missing", Draft{Time: "10:00", Location: "X"}); ok {
		t.Error("UpdateEntry(missing) = true, want false")
	}
	if ok, _ := store.UpdateEntry(feb18, "b", Draft{}); ok {
		t.Error("UpdateEntry(empty draft) = true, want false")
	}
}

func TestRemoveEntry(t *testing.T) {
	initial := Schedule{
		feb18: {
			{ID: "a", Time: "08:00", Location: "A"},
			{ID: "b", Time: "09:00", Location: "B", Note: "keep"},
		},
	}

	t.Run("declined", func(t *testing.T) {
		store, st := openTestStore(t, initial)
		before, _ := st.Load(KeySchedule)
		asked := ""
		c := ConfirmFunc(func(q string) bool { asked = q; return false })
		if ok, err := store.RemoveEntry(feb18, "a", c); ok || err != nil {
			t.Errorf("RemoveEntry() = %v, %v, want false, nil", ok, err)
		}
		if asked == "" {
			t.Error("RemoveEntry() did not ask for confirmation")
		}
		var after bytes.Buffer
		if err := EncodeSchedule(&after, store.Schedule()); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(before, after.Bytes()) {
			t.Errorf("schedule changed after a declined removal:\nbefore %s\nafter %s", before, after.Bytes())
		}
		if st.Saves() != 1 {
			t.Errorf("Saves() = %d, want only the seed save", st.Saves())
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		store, _ := openTestStore(t, initial)
		if ok, err := store.RemoveEntry(feb18, "a", Always); !ok || err != nil {
			t.Fatalf("RemoveEntry() = %v, %v, want true, nil", ok, err)
		}
		if got := ids(store.Day(feb18)); !slices.Equal(got, []string{"b"}) {
			t.Errorf("Day() ids = %v, want [b]", got)
		}
	})

	t.Run("missing is not asked", func(t *testing.T) {
		store, _ := openTestStore(t, initial)
		c := ConfirmFunc(func(string) bool { t.Error("unexpected confirmation"); return true })
		if ok, _ := store.RemoveEntry(feb18, "zz", c); ok {
			t.Error("RemoveEntry(missing) = true, want false")
		}
	})
}

func TestIDsAfterEdits(t *testing.T) {
	store, _ := openTestStore(t, Schedule{})
	live := map[string]bool{}
	for i := range 6 {
		e, _, _ := store.AddEntry(feb19, Draft{Time: fmt.Sprintf("%02d:00", 8+i), Location: "L"})
		live[e.ID] = true
	}
	for _, id := range []string{"n2", "n5"} {
		store.RemoveEntry(feb19, id, Always)
		delete(live, id)
	}
	store.UpdateEntry(feb19, "n3", Draft{Time: "12:00", Location: "Updated"})
	e, _, _ := store.AddEntry(feb19, Draft{Time: "20:00", Location: "Late"})
	live[e.ID] = true

	got := map[string]bool{}
	for _, e := range store.Day(feb19) {
		if got[e.ID] {
			t.Errorf("duplicated id %q", e.ID)
		}
		got[e.ID] = true
	}
	if diff := cmp.Diff(live, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveEntry(t *testing.T) {
	initial := Schedule{
		feb18: {
			{ID: "a", Time: "08:00", Location: "A"},
			{ID: "b", Time: "09:00", Location: "B"},
			{ID: "c", Time: "10:00", Location: "C"},
		},
	}
	testCases := []struct {
		name  string
		index int
		dir   MoveDirection
		want  []string
		ok    bool
	}{
		{"first up", 0, Up, []string{"a", "b", "c"}, false},
		{"last down", 2, Down, []string{"a", "b", "c"}, false},
		{"out of range", 5, Up, []string{"a", "b", "c"}, false},
		{"negative", -1, Down, []string{"a", "b", "c"}, false},
		{"middle up", 1, Up, []string{"b", "a", "c"}, true},
		{"middle down", 1, Down, []string{"a", "c", "b"}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, _ := openTestStore(t, initial)
			ok, err := store.MoveEntry(feb18, tc.index, tc.dir)
			if ok != tc.ok || err != nil {
				t.Errorf("MoveEntry() = %v, %v, want %v, nil", ok, err, tc.ok)
			}
			if got := ids(store.Day(feb18)); !slices.Equal(got, tc.want) {
				t.Errorf("Day() ids = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("empty day", func(t *testing.T) {
		store, _ := openTestStore(t, initial)
		if ok, _ := store.MoveEntry(feb20, 0, Down); ok {
			t.Error("MoveEntry() on an empty day = true, want false")
		}
	})
}

func TestShiftDay(t *testing.T) {
	initial := Schedule{
		feb18: {{ID: "a", Time: "08:00", Location: "A"}},
		feb19: {{ID: "b", Time: "09:00", Location: "B"}},
		feb20: {{ID: "c", Time: "10:00", Location: "C"}},
	}

	t.Run("later", func(t *testing.T) {
		store, _ := openTestStore(t, initial)
		target, ok, err := store.ShiftDay(feb18, Later)
		if !ok || err != nil || target != feb19 {
			t.Fatalf("ShiftDay() = %v, %v, %v, want %v, true, nil", target, ok, err, feb19)
		}
		want := Schedule{
			feb18: initial[feb19],
			feb19: initial[feb18],
			feb20: initial[feb20],
		}
		if diff := cmp.Diff(want, store.Schedule()); diff != "" {
			t.Errorf("Schedule() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("into an absent day", func(t *testing.T) {
		store, _ := openTestStore(t, initial)
		target, ok, _ := store.ShiftDay(feb20, Later)
		if !ok {
			t.Fatal("ShiftDay() = false, want true")
		}
		if got := ids(store.Day(target)); !slices.Equal(got, []string{"c"}) {
			t.Errorf("Day(%v) ids = %v, want [c]", target, got)
		}
		day, present := store.Schedule()[feb20]
		if !present || len(day) != 0 {
			t.Errorf("Day(%v) = %v, %v, want an empty present day", feb20, day, present)
		}
	})

	testCases := []struct {
		name string
		from date.Date
		dir  ShiftDirection
	}{
		{"first earlier", feb18, Earlier},
		{"last later", mar02, Later},
		{"not a trip date", date.New(2024, 2, 29), Later},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, st := openTestStore(t, initial)
			target, ok, err := store.ShiftDay(tc.from, tc.dir)
			if ok || err != nil || target != tc.from {
				t.Errorf("ShiftDay() = %v, %v, %v, want %v, false, nil", target, ok, err, tc.from)
			}
			if diff := cmp.Diff(initial, store.Schedule()); diff != "" {
				t.Errorf("Schedule() changed (-want +got):\n%s", diff)
			}
			if st.Saves() != 1 {
				t.Errorf("Saves() = %d, want only the seed save", st.Saves())
			}
		})
	}
}

func TestStorePersists(t *testing.T) {
	store, st := openTestStore(t, Schedule{})
	store.AddEntry(feb18, Draft{Time: "08:00", Location: "A", Note: "line 1\nline 2"})
	store.AddEntry(feb18, Draft{Time: "09:00", Location: "B", Category: Stay})
	store.MoveEntry(feb18, 1, Up)

	reopened := OpenStore(st, nil)
	if diff := cmp.Diff(store.Schedule(), reopened.Schedule()); diff != "" {
		t.Errorf("reopened store mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenStoreFallsBack(t *testing.T) {
	testCases := []struct {
		name string
		blob []byte
	}{
		{"absent", nil},
		{"garbage", []byte("{not json")},
		{"null", []byte("null")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := NewMemStorage()
			if tc.blob != nil {
				st.Save(KeySchedule, tc.blob)
			}
			store := OpenStore(st, nil)
			if diff := cmp.Diff(DefaultSchedule(), store.Schedule()); diff != "" {
				t.Errorf("Schedule() is not the default one (-want +got):\n%s", diff)
			}
		})
	}
}

type failingStorage struct{ *MemStorage }

var errDiskFull = errors.New("disk full")

func (failingStorage) Save(string, []byte) error { return errDiskFull }

func TestStoreSaveError(t *testing.T) {
	store := OpenStore(failingStorage{NewMemStorage()}, nil)
	_, ok, err := store.AddEntry(feb18, Draft{Time: "08:00", Location: "A"})
	if !ok || !errors.Is(err, errDiskFull) {
		t.Errorf("AddEntry() = %v, %v, want true, %v", ok, err, errDiskFull)
	}
}

func TestSubscribe(t *testing.T) {
	store, _ := openTestStore(t, Schedule{})
	var got []Schedule
	unsubscribe := store.Subscribe(func(s Schedule) { got = append(got, s) })

	store.AddEntry(feb18, Draft{Time: "08:00", Location: "A"})
	store.AddEntry(feb18, Draft{}) // no-op, not notified
	unsubscribe()
	store.AddEntry(feb18, Draft{Time: "09:00", Location: "B"})

	if len(got) != 1 {
		t.Fatalf("notified %d times, want 1", len(got))
	}
	if gotIDs := ids(got[0][feb18]); !slices.Equal(gotIDs, []string{"n1"}) {
		t.Errorf("notified schedule ids = %v, want [n1]", gotIDs)
	}
}

func TestReset(t *testing.T) {
	store, _ := openTestStore(t, Schedule{feb18: {}})
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultSchedule(), store.Schedule()); diff != "" {
		t.Errorf("Schedule() mismatch (-want +got):\n%s", diff)
	}
}
