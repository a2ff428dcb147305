package cmd

import (
	"context"
	"flag"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/agent"
	"github.com/etnz/aurora/renderer"
	"github.com/google/subcommands"
)

type dayCmd struct {
	date string
}

func (*dayCmd) Name() string     { return "day" }
func (*dayCmd) Synopsis() string { return "display the itinerary of a trip day" }
func (*dayCmd) Usage() string {
	return `aurora day [-d <date>]

  Displays the entries of a day with its weather. On an aurora night the
  aurora forecast is asked to the assistant.
`
}

func (c *dayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date (YYYY-MM-DD), defaults to the first day.")
}

func (c *dayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}

	var forecast *agent.Result[agent.Forecast]
	if aurora.IsAuroraNight(d) {
		r := a.assistant(ctx).Forecast(ctx, d, aurora.AuroraLocation)
		forecast = &r
	}
	printMarkdown(renderer.RenderDay(renderer.NewDay(d, a.session.Day(), forecast)))
	return subcommands.ExitSuccess
}

type datesCmd struct {
	date string
}

func (*datesCmd) Name() string     { return "dates" }
func (*datesCmd) Synopsis() string { return "list the trip dates" }
func (*datesCmd) Usage() string {
	return `aurora dates [-d <date>]

  Lists every trip date with its day number, weather and number of entries.
`
}

func (c *datesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trip date to highlight.")
}

func (c *datesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.RenderDates(renderer.NewDates(a.session.Itinerary.Schedule(), d)))
	return subcommands.ExitSuccess
}
