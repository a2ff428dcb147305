package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/agent"
	"github.com/etnz/aurora/renderer"
	"github.com/google/subcommands"
)

// askCmd is the subcommand for the AI guide.
type askCmd struct{}

// Name returns the name of the command.
func (*askCmd) Name() string { return "ask" }

// Synopsis returns a short-one line synopsis of the command.
func (*askCmd) Synopsis() string { return "ask the AI travel guide, or start a conversation" }

// Usage returns a long-form usage string.
func (*askCmd) Usage() string {
	return `aurora ask [<question>]

  Asks a question to the AI guide, a Canada travel and aurora photography
  expert. Without a question, starts an interactive conversation.
`
}

// SetFlags sets the flags for the command.
func (*askCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *askCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	chat := agent.NewChat(a.assistant(ctx))

	if f.NArg() > 0 {
		r, err := chat.Submit(ctx, strings.Join(f.Args(), " "))
		if err != nil {
			return failure(err)
		}
		printMarkdown(r.Value)
		fmt.Fprintln(stdout)
		return subcommands.ExitSuccess
	}

	if err := agent.New(stdout, stdin, chat, renderMarkdown).Run(ctx); err != nil {
		fmt.Fprintln(stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type forecastCmd struct {
	date     string
	location string
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "predict the aurora visibility of a night" }
func (*forecastCmd) Usage() string {
	return `aurora forecast [-d <date>] [-l <location>]

  Asks the assistant for the aurora chance, KP index and a short description.
  Without an API key the forecast is an estimate.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", aurora.AuroraNights.From.String(), "Night of the forecast.")
	f.StringVar(&c.location, "l", aurora.AuroraLocation, "Where the aurora is watched.")
}

func (c *forecastCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	d, err := a.selectDate(c.date)
	if err != nil {
		return failure(err)
	}
	r := a.assistant(ctx).Forecast(ctx, d, c.location)
	printMarkdown(renderer.RenderForecast(renderer.NewForecast(d, c.location, r)))
	return subcommands.ExitSuccess
}
