package renderer

import (
	"github.com/etnz/aurora"
	"github.com/etnz/aurora/date"
)

// Expenses is the view of the expense ledger.
type Expenses struct {
	Total     aurora.Money   `json:"total"`    // TWD
	TotalCAD  aurora.Money   `json:"totalCad"` // at the fixed rate
	Rate      string         `json:"rate"`
	Breakdown []ExpenseShare `json:"breakdown"`
	Records   []ExpenseLine  `json:"records"`
}

// ExpenseShare is the spending of a category.
type ExpenseShare struct {
	Category string       `json:"category"`
	Amount   aurora.Money `json:"amount"`
	Percent  int          `json:"percent"`
}

// ExpenseLine is a row of the ledger.
type ExpenseLine struct {
	ID       string       `json:"id"`
	Date     date.Date    `json:"date"`
	Category string       `json:"category"`
	Payer    string       `json:"payer"`
	Amount   aurora.Money `json:"amount"`
	TWD      aurora.Money `json:"twd"`
	Note     string       `json:"note,omitempty"`
}

// NewExpenses creates the view of l.
func NewExpenses(l *aurora.Ledger) *Expenses {
	v := &Expenses{
		Total:    l.Total(),
		TotalCAD: l.TotalCAD(),
		Rate:     aurora.Rate.String(),
	}
	for _, s := range l.Breakdown() {
		v.Breakdown = append(v.Breakdown, ExpenseShare{
			Category: s.Category.Label() + " " + s.Category.EnLabel(),
			Amount:   s.Amount,
			Percent:  s.Percent,
		})
	}
	for _, e := range l.Expenses() {
		v.Records = append(v.Records, ExpenseLine{
			ID:       e.ID,
			Date:     e.Date,
			Category: e.Category.Label(),
			Payer:    cell(e.Payer),
			Amount:   e.Amount,
			TWD:      aurora.ToTWD(e.Amount),
			Note:     cell(e.Note),
		})
	}
	return v
}
