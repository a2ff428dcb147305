package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/renderer"
	"github.com/google/subcommands"
)

type bookingCmd struct {
	pin    string
	digest string
}

func (*bookingCmd) Name() string     { return "booking" }
func (*bookingCmd) Synopsis() string { return "display the flights and stays, behind the PIN" }
func (*bookingCmd) Usage() string {
	return `aurora booking [-pin <pin>]
aurora booking -digest <pin>

  Asks for the PIN and displays the booked flights and stays.
  With -digest, prints the pin_digest configuration value of a new PIN.
`
}

func (c *bookingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pin, "pin", "", "PIN, asked on the terminal when omitted.")
	f.StringVar(&c.digest, "digest", "", "Print the digest of this PIN and exit.")
}

func (c *bookingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.digest != "" {
		g, err := aurora.NewGate(c.digest)
		if err != nil {
			return failure(err)
		}
		fmt.Fprintln(stdout, g.Digest())
		return subcommands.ExitSuccess
	}

	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	gate, err := a.gate()
	if err != nil {
		return failure(err)
	}
	pin := c.pin
	if pin == "" {
		if pin, err = readPIN(); err != nil {
			return failure(err)
		}
	}
	if err := gate.Unlock(pin); err != nil {
		return failure(err)
	}
	printMarkdown(renderer.RenderBookings(renderer.NewBookings()))
	return subcommands.ExitSuccess
}

// gate returns the booking gate of the configured PIN.
func (a *app) gate() (*aurora.Gate, error) {
	if a.cfg.PINDigest != "" {
		return aurora.ParseGate(a.cfg.PINDigest)
	}
	return aurora.NewGate(aurora.DefaultPIN)
}
