package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers a shell completion request for the commands registered in
// c, and exits. It returns immediately when the shell is not asking.
//
// Install the completion with:
//
//	COMP_INSTALL=1 aurora
func Complete(c *subcommands.Commander, name string) {
	completionTree(c).Complete(name)
}

func completionTree(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags("", flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(cmd.Name(), fs)}
		switch cmd.Name() {
		case "topic":
			if topics, err := docs.GetAllTopics(); err == nil {
				sub.Args = predict.Set(topics)
			}
		case "help":
			sub.Args = predict.Set(commandNames(c))
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func commandNames(c *subcommands.Commander) []string {
	var list []string
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		list = append(list, cmd.Name())
	})
	return list
}

// predictFlags returns the predictors of the flags of command, bool flags take no value.
func predictFlags(command string, fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = nil
			return
		}
		flags[f.Name] = flagPredictor(command, f.Name)
	})
	return flags
}

func flagPredictor(command, name string) complete.Predictor {
	switch name {
	case "config":
		return predict.Files("*.yaml")
	case "o":
		if command == "backup" {
			return predict.Files("*.json")
		}
		return predict.Files("*.ics")
	case "in":
		return predict.Files("*.json")
	case "d":
		var dates []string
		for _, d := range aurora.TripDates() {
			dates = append(dates, d.String())
		}
		return predict.Set(dates)
	case "c":
		if strings.HasPrefix(command, "spend") {
			return names(aurora.ExpenseCategories)
		}
		return names(aurora.Categories)
	case "k":
		return names(aurora.ItemKinds)
	case "r":
		return names(aurora.Regions)
	case "cur":
		return predict.Set{aurora.CAD, aurora.TWD}
	default:
		return predict.Something
	}
}

// names predicts the lower case names of values.
func names[T interface{ String() string }](values []T) predict.Set {
	var s predict.Set
	for _, v := range values {
		s = append(s, strings.ToLower(v.String()))
	}
	return s
}
