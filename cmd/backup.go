package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/aurora"
	"github.com/google/subcommands"
)

type backupCmd struct {
	out string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "write the itinerary, expenses and checklist to a single file" }
func (*backupCmd) Usage() string {
	return `aurora backup [-o <file.json>]

  Writes every saved feature as one JSON object keyed by storage key. Without
  -o the backup is printed on stdout.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "Output file, stdout by default.")
}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	if c.out == "" {
		if err := aurora.Backup(stdout, a.storage); err != nil {
			return failure(err)
		}
		return subcommands.ExitSuccess
	}

	out, err := os.OpenFile(c.out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return failure(fmt.Errorf("cannot create backup file: %w", err))
	}
	if err := aurora.Backup(out, a.storage); err != nil {
		out.Close()
		return failure(err)
	}
	if err := out.Close(); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Successfully wrote backup to %s\n", c.out)
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	in string
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the saved data with a backup" }
func (*restoreCmd) Usage() string {
	return `aurora restore -in <file.json>

  Replaces the features held in the backup, once confirmed. A dump of the
  browser storage of the web planner is accepted too. Nothing is written if
  any part of the backup is invalid.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "The backup file to restore.")
}

func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		fmt.Fprintln(stderr, "Error: -in flag is required.")
		return subcommands.ExitUsageError
	}
	in, err := os.Open(c.in)
	if err != nil {
		return failure(err)
	}
	defer in.Close()

	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	if !confirm.Confirm("確定要覆蓋目前的資料嗎？") {
		fmt.Fprintln(stdout, "Cancelled")
		return subcommands.ExitSuccess
	}
	keys, err := aurora.Restore(in, a.storage)
	if err != nil {
		return failure(err)
	}
	if len(keys) == 0 {
		return failure(fmt.Errorf("no aurora data in %s: %w", c.in, errNothingDone))
	}
	fmt.Fprintf(stdout, "Restored %s\n", strings.Join(keys, ", "))
	return subcommands.ExitSuccess
}
