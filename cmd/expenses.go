package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/date"
	"github.com/etnz/aurora/renderer"
	"github.com/google/subcommands"
)

type expensesCmd struct{}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "display the expenses, their total and breakdown" }
func (*expensesCmd) Usage() string {
	return `aurora expenses

  Lists the spendings, newest first, with the total in TWD and CAD and the
  share of each category.
`
}

func (*expensesCmd) SetFlags(f *flag.FlagSet) {}

func (*expensesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	printMarkdown(renderer.RenderExpenses(renderer.NewExpenses(a.session.Expenses)))
	return subcommands.ExitSuccess
}

// expenseFlags are the editable fields of an expense.
type expenseFlags struct {
	amount   string
	currency string
	category string
	payer    string
	date     string
	note     string
}

func (e *expenseFlags) set(f *flag.FlagSet) {
	f.StringVar(&e.amount, "a", "", "Amount, anything that is not a number counts as 0.")
	f.StringVar(&e.currency, "cur", aurora.CAD, "Currency: CAD or TWD.")
	f.StringVar(&e.category, "c", "food", "Category: food, transport, stay or shopping.")
	f.StringVar(&e.payer, "p", "Me", "Who paid.")
	f.StringVar(&e.date, "d", "", "Date of the spending, defaults to today.")
	f.StringVar(&e.note, "n", "", "Optional note.")
}

// apply copies the flags set on the command line into draft.
func (e *expenseFlags) apply(f *flag.FlagSet, draft *aurora.ExpenseDraft) error {
	var err error
	amount, currency := draft.Amount.Value(), draft.Amount.Currency()
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "a":
			amount = aurora.ParseAmount(e.amount)
		case "cur":
			currency = strings.ToUpper(strings.TrimSpace(e.currency))
		case "p":
			draft.Payer = e.payer
		case "n":
			draft.Note = e.note
		case "c":
			c, perr := aurora.ParseExpenseCategory(e.category)
			if perr != nil {
				err = perr
				return
			}
			draft.Category = c
		case "d":
			d, perr := date.Parse(e.date)
			if perr != nil {
				err = perr
				return
			}
			draft.Date = d
		}
	})
	draft.Amount = aurora.M(amount, currency)
	return err
}

type spendCmd struct {
	expenseFlags
}

func (*spendCmd) Name() string     { return "spend" }
func (*spendCmd) Synopsis() string { return "record a spending" }
func (*spendCmd) Usage() string {
	return `aurora spend -a <amount> [-cur CAD|TWD] [-c <category>] [-p <payer>] [-d <date>] [-n <note>]

  Records a spending, it is listed first.

Usage Examples:
$ aurora spend -a 120 -cur CAD -c food -p Kevin -n "Buffalo Steak"
`
}

func (c *spendCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *spendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.amount) == "" {
		return failure(fmt.Errorf("an amount is required: %w", errNothingDone))
	}
	category, err := aurora.ParseExpenseCategory(c.category)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	draft := aurora.ExpenseDraft{
		Amount:   aurora.M(aurora.ParseAmount(c.amount), strings.ToUpper(strings.TrimSpace(c.currency))),
		Category: category,
		Payer:    c.payer,
		Date:     date.Today(),
		Note:     c.note,
	}
	if c.date != "" {
		if draft.Date, err = date.Parse(c.date); err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitUsageError
		}
	}

	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	e, ok, err := a.session.Expenses.Add(draft)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("currency must be CAD or TWD: %w", errNothingDone))
	}
	fmt.Fprintf(stdout, "Recorded %s %s paid by %s (id %s)\n", e.Amount, e.Category.Label(), e.Payer, e.ID)
	return subcommands.ExitSuccess
}

type spendEditCmd struct {
	id string
	expenseFlags
}

func (*spendEditCmd) Name() string     { return "spend-edit" }
func (*spendEditCmd) Synopsis() string { return "edit a spending" }
func (*spendEditCmd) Usage() string {
	return `aurora spend-edit -id <id> [-a <amount>] [-cur CAD|TWD] [-c <category>] [-p <payer>] [-d <date>] [-n <note>]

  Changes the fields given on the command line, the others are kept.
`
}

func (c *spendEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the spending, as displayed by the expenses command.")
	c.set(f)
}

func (c *spendEditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	blank := false
	f.Visit(func(fl *flag.Flag) { blank = blank || fl.Name == "a" && strings.TrimSpace(c.amount) == "" })
	if blank {
		return failure(fmt.Errorf("an amount is required: %w", errNothingDone))
	}
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	e, ok := a.session.Expenses.Expense(c.id)
	if !ok {
		return failure(fmt.Errorf("expense %q: %w", c.id, aurora.ErrNotFound))
	}
	draft := aurora.ExpenseDraftOf(e)
	if err := c.apply(f, &draft); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	ok, err = a.session.Expenses.Update(c.id, draft)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return failure(fmt.Errorf("currency must be CAD or TWD: %w", errNothingDone))
	}
	fmt.Fprintf(stdout, "Updated expense %s\n", c.id)
	return subcommands.ExitSuccess
}

type spendRmCmd struct {
	id string
}

func (*spendRmCmd) Name() string     { return "spend-rm" }
func (*spendRmCmd) Synopsis() string { return "remove a spending" }
func (*spendRmCmd) Usage() string {
	return `aurora spend-rm -id <id>

  Removes a spending once confirmed.
`
}

func (c *spendRmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the spending to remove.")
}

func (c *spendRmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	if _, ok := a.session.Expenses.Expense(c.id); !ok {
		return failure(fmt.Errorf("expense %q: %w", c.id, aurora.ErrNotFound))
	}
	ok, err := a.session.Expenses.Remove(c.id, confirm)
	if err != nil {
		return failure(err)
	}
	if !ok {
		fmt.Fprintln(stdout, "Cancelled")
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stdout, "Removed expense %s\n", c.id)
	return subcommands.ExitSuccess
}

type convertCmd struct {
	region string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert a CAD price to TWD, sales tax included" }
func (*convertCmd) Usage() string {
	return `aurora convert [-r NWT|BC] <amount>

  Adds the sales tax of the region to a CAD sticker price and converts it to
  TWD. The region defaults to the one of the configuration.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.region, "r", "", "Sales tax region: NWT or BC.")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "convert takes exactly one amount")
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return failure(err)
	}
	defer a.close()
	name := c.region
	if name == "" {
		name = a.cfg.Region
	}
	region, err := aurora.ParseRegion(name)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.RenderConversion(renderer.NewConversion(aurora.ParseAmount(f.Arg(0)), region)))
	return subcommands.ExitSuccess
}
