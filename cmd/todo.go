package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/renderer"
	"github.com/google/subcommands"
)

type todoCmd struct{}

func (*todoCmd) Name() string     { return "todo" }
func (*todoCmd) Synopsis() string { return "display the to-do, packing and shopping lists" }
func (*todoCmd) Usage() string {
	return `aurora todo

  Displays the three preparation lists and their progress.
`
}

func (*todoCmd) SetFlags(f *flag.FlagSet) {}

func (*todoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	printMarkdown(renderer.RenderChecklist(renderer.NewChecklist(a.session.Checklist)))
	return subcommands.ExitSuccess
}

type todoAddCmd struct {
	kind     string
	assignee string
}

func (*todoAddCmd) Name() string     { return "todo-add" }
func (*todoAddCmd) Synopsis() string { return "add an item to a preparation list" }
func (*todoAddCmd) Usage() string {
	return `aurora todo-add [-k todo|packing|shopping] [-a <assignee>] <task>

Usage Examples:
$ aurora todo-add -k packing -a Kevin "暖暖包"
`
}

func (c *todoAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "todo", "List: todo, packing or shopping.")
	f.StringVar(&c.assignee, "a", aurora.Everyone, "Who takes care of it.")
}

func (c *todoAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := aurora.ParseItemKind(c.kind)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	item, ok, err := a.session.Checklist.Add(kind, strings.Join(f.Args(), " "), c.assignee)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("a task is required: %w", errNothingDone))
	}
	fmt.Fprintf(stdout, "Added %q to %s (id %s)\n", item.Task, kind.Label(), item.ID)
	return subcommands.ExitSuccess
}

type todoToggleCmd struct {
	id string
}

func (*todoToggleCmd) Name() string     { return "todo-toggle" }
func (*todoToggleCmd) Synopsis() string { return "check or uncheck a list item" }
func (*todoToggleCmd) Usage() string {
	return `aurora todo-toggle -id <id>
`
}

func (c *todoToggleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the item.")
}

func (c *todoToggleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	ok, err := a.session.Checklist.Toggle(c.id)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("item %q: %w", c.id, aurora.ErrNotFound))
	}
	fmt.Fprintf(stdout, "Toggled item %s\n", c.id)
	return subcommands.ExitSuccess
}

type todoRmCmd struct {
	id string
}

func (*todoRmCmd) Name() string     { return "todo-rm" }
func (*todoRmCmd) Synopsis() string { return "remove a list item" }
func (*todoRmCmd) Usage() string {
	return `aurora todo-rm -id <id>

  Removes an item once confirmed.
`
}

func (c *todoRmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the item to remove.")
}

func (c *todoRmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	found := false
	for _, k := range aurora.ItemKinds {
		for _, item := range a.session.Checklist.Items(k) {
			found = found || item.ID == c.id
		}
	}
	if !found {
		return failure(fmt.Errorf("item %q: %w", c.id, aurora.ErrNotFound))
	}
	ok, err := a.session.Checklist.Remove(c.id, confirm)
	if err != nil {
		return failure(err)
	}
	if !ok {
		fmt.Fprintln(stdout, "Cancelled")
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stdout, "Removed item %s\n", c.id)
	return subcommands.ExitSuccess
}
