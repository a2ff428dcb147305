// Command aurora plans a Canada aurora trip: itinerary, expenses, bookings,
// checklist and an AI guide, all kept on this device.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/aurora/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	cmd.Complete(commander, name)

	flag.Parse()
	if sub := flag.Arg(0); sub != "" && !cmd.Known(commander, sub) {
		if ok, code := cmd.RunExtension(sub, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
