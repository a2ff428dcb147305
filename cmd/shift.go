package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/aurora"
	"github.com/google/subcommands"
)

type shiftCmd struct {
	date  string
	later bool
}

func (*shiftCmd) Name() string     { return "shift" }
func (*shiftCmd) Synopsis() string { return "swap the plan of a day with the previous or next day" }
func (*shiftCmd) Usage() string {
	return `aurora shift -d <date> [-later]

  Swaps the whole plan of the day with the previous trip date, or with the
  next one with -later. The weather stays with the date.
`
}

func (c *shiftCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date, defaults to the first day.")
	f.BoolVar(&c.later, "later", false, "Shift to the next day instead of the previous one.")
}

func (c *shiftCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	from, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}
	dir := aurora.Earlier
	if c.later {
		dir = aurora.Later
	}
	ok, err := a.session.ShiftDay(dir)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("cannot shift %v any further: %w", from, errNothingDone))
	}
	fmt.Fprintf(stdout, "Moved the plan of %s to %s\n", from, a.session.Selected())
	return subcommands.ExitSuccess
}

type resetCmd struct{}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "restore the bundled itinerary" }
func (*resetCmd) Usage() string {
	return `aurora reset

  Replaces the itinerary with the bundled one, once confirmed. Expenses and
  checklist are kept.
`
}

func (*resetCmd) SetFlags(f *flag.FlagSet) {}

func (*resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	if !confirm.Confirm("確定要重置行程嗎？") {
		fmt.Fprintln(stdout, "Cancelled")
		return subcommands.ExitSuccess
	}
	if err := a.session.Itinerary.Reset(); err != nil {
		return failure(err)
	}
	fmt.Fprintln(stdout, "Itinerary restored")
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the itinerary as an iCalendar file" }
func (*exportCmd) Usage() string {
	return `aurora export [-o <file.ics>]

  Writes one calendar event per entry, in the time zone of the configuration.
  Without -o the calendar is printed on stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout by default.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	loc, err := a.cfg.Location()
	if err != nil {
		return failure(err)
	}
	if c.output == "" {
		if err := aurora.ExportICS(stdout, a.session.Itinerary.Schedule(), loc, time.Now()); err != nil {
			return failure(err)
		}
		return subcommands.ExitSuccess
	}

	out, err := os.Create(c.output)
	if err != nil {
		return failure(fmt.Errorf("cannot create calendar file: %w", err))
	}
	if err := aurora.ExportICS(out, a.session.Itinerary.Schedule(), loc, time.Now()); err != nil {
		out.Close()
		return failure(err)
	}
	if err := out.Close(); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Successfully exported the itinerary to %s\n", c.output)
	return subcommands.ExitSuccess
}
