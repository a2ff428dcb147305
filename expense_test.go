package aurora

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestLedger(t *testing.T, expenses []Expense) *Ledger {
	t.Helper()
	st := NewMemStorage()
	if expenses != nil {
		var buf bytes.Buffer
		if err := EncodeExpenses(&buf, expenses); err != nil {
			t.Fatalf("EncodeExpenses() unexpected error: %v", err)
		}
		st.Save(KeyExpenses, buf.Bytes())
	}
	l := OpenLedger(st, nil)
	n := 0
	l.newID = func() string {
		n++
		return fmt.Sprintf("x%d", n)
	}
	return l
}

func expenseIDs(expenses []Expense) []string {
	var ids []string
	for _, e := range expenses {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestLedgerDefaults(t *testing.T) {
	l := openTestLedger(t, nil)
	if got := expenseIDs(l.Expenses()); !cmp.Equal(got, []string{"1", "2"}) {
		t.Errorf("Expenses() ids = %v, want [1 2]", got)
	}
	// (120 + 45) * 23.85
	if got := l.Total(); !got.Equal(NTD(3935.25)) {
		t.Errorf("Total() = %v, want %v", got, NTD(3935.25))
	}
	if got := l.TotalCAD(); !got.Equal(Dollars(165)) {
		t.Errorf("TotalCAD() = %v, want %v", got, Dollars(165))
	}
}

func TestLedgerAdd(t *testing.T) {
	l := openTestLedger(t, []Expense{})

	if _, ok, _ := l.Add(ExpenseDraft{Category: Meals}); ok {
		t.Error("Add() without amount = true, want false")
	}
	e, ok, err := l.Add(ExpenseDraft{Amount: Dollars(12.5), Category: Meals, Date: feb19, Note: "Tim Hortons"})
	if !ok || err != nil {
		t.Fatalf("Add() = %v, %v, want true, nil", ok, err)
	}
	if e.Payer != "Me" {
		t.Errorf("Add() payer = %q, want the default %q", e.Payer, "Me")
	}
	l.Add(ExpenseDraft{Amount: NTD(500), Category: Shopping, Payer: "Emily", Date: feb19})

	if got := expenseIDs(l.Expenses()); !cmp.Equal(got, []string{"x2", "x1"}) {
		t.Errorf("Expenses() ids = %v, want newest first [x2 x1]", got)
	}
}

func TestLedgerUpdateRemove(t *testing.T) {
	l := openTestLedger(t, nil)

	if ok, _ := l.Update("nope", ExpenseDraft{Amount: Dollars(1)}); ok {
		t.Error("Update(missing) = true, want false")
	}
	d := ExpenseDraftOf(DefaultExpenses()[1])
	d.Amount = NTD(1000)
	if ok, err := l.Update("2", d); !ok || err != nil {
		t.Fatalf("Update() = %v, %v, want true, nil", ok, err)
	}
	if e, _ := l.Expense("2"); !e.Amount.Equal(NTD(1000)) || e.Category != Rides {
		t.Errorf("Expense(2) = %+v, want 1000 TWD of transport", e)
	}

	if ok, _ := l.Remove("1", Never); ok {
		t.Error("Remove() declined = true, want false")
	}
	if ok, err := l.Remove("1", Always); !ok || err != nil {
		t.Errorf("Remove() = %v, %v, want true, nil", ok, err)
	}
	if got := expenseIDs(l.Expenses()); !cmp.Equal(got, []string{"2"}) {
		t.Errorf("Expenses() ids = %v, want [2]", got)
	}
}

func TestLedgerBreakdown(t *testing.T) {
	l := openTestLedger(t, []Expense{
		{ID: "a", Amount: Dollars(100), Category: Rides, Payer: "Me", Date: feb18},
		{ID: "b", Amount: NTD(2385), Category: Meals, Payer: "Me", Date: feb18},
		{ID: "c", Amount: Dollars(200), Category: Rides, Payer: "Me", Date: feb18},
	})
	got := l.Breakdown()
	if len(got) != 2 {
		t.Fatalf("Breakdown() = %v, want 2 shares", got)
	}
	want := []struct {
		cat     ExpenseCategory
		amount  Money
		percent int
	}{
		{Rides, NTD(7155), 75},
		{Meals, NTD(2385), 25},
	}
	for i, w := range want {
		if got[i].Category != w.cat || !got[i].Amount.Equal(w.amount) || got[i].Percent != w.percent {
			t.Errorf("Breakdown()[%d] = {%v %v %d}, want {%v %v %d}", i, got[i].Category, got[i].Amount, got[i].Percent, w.cat, w.amount, w.percent)
		}
	}
}

func TestLedgerBreakdownDuringAdd(t *testing.T) {
	l := openTestLedger(t, []Expense{
		{ID: "a", Amount: NTD(10), Category: Meals, Payer: "Me", Date: feb18},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			l.Add(ExpenseDraft{Amount: NTD(1000000), Category: Rides, Payer: "Me", Date: feb18})
		}
	}()
	for i := 0; i < 50; i++ {
		sum := 0
		shares := l.Breakdown()
		for _, s := range shares {
			sum += s.Percent
		}
		// Rounding moves each share by at most one point.
		if sum < 100-len(shares) || sum > 100+len(shares) {
			t.Fatalf("Breakdown() percentages sum to %d: %v", sum, shares)
		}
	}
	wg.Wait()
}

func TestExpensesRoundTrip(t *testing.T) {
	want := []Expense{
		{ID: "1", Amount: Dollars(120), Category: Meals, Payer: "Kevin", Date: feb18, Note: "Buffalo Steak"},
		{ID: "2", Amount: NTD(45.5), Category: Shopping, Payer: "Me", Date: feb19},
	}
	var buf bytes.Buffer
	if err := EncodeExpenses(&buf, want); err != nil {
		t.Fatalf("EncodeExpenses() unexpected error: %v", err)
	}
	got, err := DecodeExpenses(&buf)
	if err != nil {
		t.Fatalf("DecodeExpenses() unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("DecodeExpenses() = %d expenses, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || !g.Amount.Equal(w.Amount) || g.Category != w.Category || g.Payer != w.Payer || g.Date != w.Date || g.Note != w.Note {
			t.Errorf("expense %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestParseExpenseCategory(t *testing.T) {
	for _, c := range ExpenseCategories {
		for _, in := range []string{c.String(), c.EnLabel(), c.Label()} {
			if got, err := ParseExpenseCategory(in); err != nil || got != c {
				t.Errorf("ParseExpenseCategory(%q) = %v, %v, want %v", in, got, err, c)
			}
		}
	}
	if Shopping.EnLabel() != "Shopping" {
		t.Errorf("Shopping.EnLabel() = %q, want Shopping", Shopping.EnLabel())
	}
	if _, err := ParseExpenseCategory("gifts"); err == nil {
		t.Error("ParseExpenseCategory(gifts) = nil error, want an error")
	}
}
