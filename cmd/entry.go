package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/date"
	"github.com/google/subcommands"
)

// errNothingDone reports a command that could not apply and changed nothing.
var errNothingDone = errors.New("nothing changed")

func checkTime(s string) error {
	if !aurora.ValidTime(s) {
		return fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return nil
}

type addCmd struct {
	date     string
	time     string
	location string
	category string
	note     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an entry to a trip day" }
func (*addCmd) Usage() string {
	return `aurora add -d <date> -t <HH:MM> -l <location> [-c <category>] [-n <note>]

  Appends an entry at the end of the day. Time and location are required.

Usage Examples:
$ aurora add -d 2024-02-19 -t 10:00 -l "Stanley Park (史丹利公園)" -c scenery
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date, defaults to the first day.")
	f.StringVar(&c.time, "t", "", "Time of the entry (HH:MM).")
	f.StringVar(&c.location, "l", "", "Location, an optional \"(...)\" suffix is a detail.")
	f.StringVar(&c.category, "c", "scenery", "Category: scenery, food, transport or stay.")
	f.StringVar(&c.note, "n", "", "Optional note.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	category, err := aurora.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	if c.time != "" {
		if err := checkTime(c.time); err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitUsageError
		}
	}
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}

	draft := aurora.Draft{Time: c.time, Location: c.location, Category: category, Note: c.note}
	e, ok, err := a.session.Itinerary.AddEntry(d, draft)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("time and location are required: %w", errNothingDone))
	}
	fmt.Fprintf(stdout, "Added %s %s on %s (id %s)\n", e.Time, e.Location, d, e.ID)
	return subcommands.ExitSuccess
}

type editCmd struct {
	date     string
	id       string
	time     string
	location string
	category string
	note     string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit an entry of a trip day" }
func (*editCmd) Usage() string {
	return `aurora edit -d <date> -id <id> [-t <HH:MM>] [-l <location>] [-c <category>] [-n <note>]

  Changes the fields given on the command line, the others are kept.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date, defaults to the first day.")
	f.StringVar(&c.id, "id", "", "Id of the entry, as displayed by the day command.")
	f.StringVar(&c.time, "t", "", "New time (HH:MM).")
	f.StringVar(&c.location, "l", "", "New location.")
	f.StringVar(&c.category, "c", "", "New category.")
	f.StringVar(&c.note, "n", "", "New note, an empty one removes it.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}
	e, ok := a.session.Itinerary.Entry(d, c.id)
	if !ok {
		return failure(fmt.Errorf("entry %q of %v: %w", c.id, d, aurora.ErrNotFound))
	}

	draft := aurora.DraftOf(e)
	var parseErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "t":
			draft.Time = c.time
			if err := checkTime(c.time); err != nil {
				parseErr = err
			}
		case "l":
			draft.Location = c.location
		case "n":
			draft.Note = c.note
		case "c":
			category, err := aurora.ParseCategory(c.category)
			if err != nil {
				parseErr = err
			}
			draft.Category = category
		}
	})
	if parseErr != nil {
		fmt.Fprintln(stderr, parseErr)
		return subcommands.ExitUsageError
	}

	ok, err = a.session.Itinerary.UpdateEntry(d, c.id, draft)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("time and location are required: %w", errNothingDone))
	}
	fmt.Fprintf(stdout, "Updated %s on %s\n", c.id, d)
	return subcommands.ExitSuccess
}

type rmCmd struct {
	date string
	id   string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove an entry from a trip day" }
func (*rmCmd) Usage() string {
	return `aurora rm -d <date> -id <id>

  Removes an entry once confirmed.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date, defaults to the first day.")
	f.StringVar(&c.id, "id", "", "Id of the entry to remove.")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}
	if _, ok := a.session.Itinerary.Entry(d, c.id); !ok {
		return failure(fmt.Errorf("entry %q of %v: %w", c.id, d, aurora.ErrNotFound))
	}
	ok, err := a.session.Itinerary.RemoveEntry(d, c.id, confirm)
	if err != nil {
		return failure(err)
	}
	if !ok {
		fmt.Fprintln(stdout, "Cancelled")
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stdout, "Removed %s from %s\n", c.id, d)
	return subcommands.ExitSuccess
}

type mvCmd struct {
	date  string
	index int
	up    bool
}

func (*mvCmd) Name() string     { return "mv" }
func (*mvCmd) Synopsis() string { return "move an entry up or down within its day" }
func (*mvCmd) Usage() string {
	return `aurora mv -d <date> -i <index> [-up]

  Swaps the entry at position index (starting at 1) with the next one, or
  with the previous one with -up.
`
}

func (c *mvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date, defaults to the first day.")
	f.IntVar(&c.index, "i", 0, "Position of the entry in the day, starting at 1.")
	f.BoolVar(&c.up, "up", false, "Move the entry up instead of down.")
}

func (c *mvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}
	dir := aurora.Down
	if c.up {
		dir = aurora.Up
	}
	ok, err := a.session.Itinerary.MoveEntry(d, c.index-1, dir)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("cannot move entry %d of %v: %w", c.index, d, errNothingDone))
	}
	fmt.Fprintf(stdout, "Moved entry %d of %s\n", c.index, d)
	return subcommands.ExitSuccess
}

type mapCmd struct {
	date  string
	index int
}

func (*mapCmd) Name() string     { return "map" }
func (*mapCmd) Synopsis() string { return "print the map search link of an entry" }
func (*mapCmd) Usage() string {
	return `aurora map -d <date> -i <index>

  Prints the map search URL of the entry location, without its "(...)" detail.
`
}

func (c *mapCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date, defaults to the first day.")
	f.IntVar(&c.index, "i", 1, "Position of the entry in the day, starting at 1.")
}

func (c *mapCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}
	e, err := entryAt(a.session.Day(), d, c.index)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintln(stdout, aurora.MapURL(e.Location))
	return subcommands.ExitSuccess
}

// entryAt returns the entry at the 1-based position index of day d.
func entryAt(entries []aurora.Entry, d date.Date, index int) (aurora.Entry, error) {
	if index < 1 || index > len(entries) {
		return aurora.Entry{}, fmt.Errorf("entry %d of %v: %w", index, d, aurora.ErrNotFound)
	}
	return entries[index-1], nil
}
