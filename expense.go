package aurora

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/aurora/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseCategory classifies a spending.
type ExpenseCategory int

const (
	Meals ExpenseCategory = iota
	Rides
	Lodging
	Shopping
)

var ExpenseCategories = []ExpenseCategory{Meals, Rides, Lodging, Shopping}

func (c ExpenseCategory) String() string {
	switch c {
	case Meals:
		return "food"
	case Rides:
		return "transport"
	case Lodging:
		return "stay"
	case Shopping:
		return "shopping"
	default:
		return "unknown"
	}
}

func (c ExpenseCategory) Label() string {
	switch c {
	case Meals:
		return "美食"
	case Rides:
		return "交通"
	case Lodging:
		return "住宿"
	case Shopping:
		return "購物"
	default:
		return "?"
	}
}

func (c ExpenseCategory) EnLabel() string {
	switch c {
	case Meals:
		return "Food"
	case Rides:
		return "Transport"
	case Lodging:
		return "Stay"
	case Shopping:
		return "Shopping"
	default:
		return "Unknown"
	}
}

// ParseExpenseCategory parses a category name (any case) or its Chinese label.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range ExpenseCategories {
		if strings.EqualFold(s, c.String()) || s == c.Label() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown expense category %q, want one of food, transport, stay, shopping", s)
}

func (c ExpenseCategory) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *ExpenseCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseExpenseCategory(s)
	if err != nil {
		return err
	}
	*c = p
	return nil
}

// Expense is one spending of the trip.
type Expense struct {
	ID       string
	Amount   Money
	Category ExpenseCategory
	Payer    string
	Date     date.Date
	Note     string
}

// ExpenseDraft holds the editable fields of an expense.
type ExpenseDraft struct {
	Amount   Money
	Category ExpenseCategory
	Payer    string
	Date     date.Date
	Note     string
}

// ExpenseDraftOf returns a draft preloaded with e's fields.
func ExpenseDraftOf(e Expense) ExpenseDraft {
	return ExpenseDraft{Amount: e.Amount, Category: e.Category, Payer: e.Payer, Date: e.Date, Note: e.Note}
}

// Valid reports whether the draft has an amount in a trip currency.
func (d ExpenseDraft) Valid() bool {
	return d.Amount.Currency() == CAD || d.Amount.Currency() == TWD
}

func (d ExpenseDraft) expense(id string) Expense {
	payer := strings.TrimSpace(d.Payer)
	if payer == "" {
		payer = "Me"
	}
	return Expense{ID: id, Amount: d.Amount, Category: d.Category, Payer: payer, Date: d.Date, Note: d.Note}
}

func (e Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.AppendRaw("amount", []byte(e.Amount.Value().String()))
	w.Append("currency", e.Amount.Currency())
	w.Append("category", e.Category)
	w.Append("payer", e.Payer)
	w.Append("date", e.Date)
	w.Optional("note", e.Note)
	return w.MarshalJSON()
}

func (e *Expense) UnmarshalJSON(b []byte) error {
	var je struct {
		ID       string          `json:"id"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
		Category ExpenseCategory `json:"category"`
		Payer    string          `json:"payer"`
		Date     date.Date       `json:"date"`
		Note     string          `json:"note"`
	}
	if err := json.Unmarshal(b, &je); err != nil {
		return err
	}
	if je.Currency != CAD && je.Currency != TWD {
		return fmt.Errorf("expense %q: unsupported currency %q", je.ID, je.Currency)
	}
	*e = Expense{ID: je.ID, Amount: M(je.Amount, je.Currency), Category: je.Category, Payer: je.Payer, Date: je.Date, Note: je.Note}
	return nil
}

// Share is the part of the spending of one category.
type Share struct {
	Category ExpenseCategory
	Amount   Money // TWD
	Percent  int   // rounded, of the TWD total
}

// Ledger is the expense ledger. Like the itinerary it is saved under its own
// key on every change.
type Ledger struct {
	mu       sync.Mutex
	expenses []Expense // newest first
	storage  Storage
	log      *zap.Logger
	newID    func() string
}

// OpenLedger loads the expenses from st, or the sample ones.
func OpenLedger(st Storage, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		expenses: loadOrDefault(st, KeyExpenses, DecodeExpenses, DefaultExpenses, log),
		storage:  st,
		log:      log,
		newID:    shortID,
	}
}

// DefaultExpenses returns the sample expenses of a fresh ledger.
func DefaultExpenses() []Expense {
	return []Expense{
		{ID: "1", Amount: Dollars(120), Category: Meals, Payer: "Kevin", Date: date.New(2024, 3, 14), Note: "Buffalo Steak"},
		{ID: "2", Amount: Dollars(45), Category: Rides, Payer: "Me", Date: date.New(2024, 3, 14)},
	}
}

// EncodeExpenses writes the expenses as a JSON array.
func EncodeExpenses(w io.Writer, expenses []Expense) error {
	if expenses == nil {
		expenses = []Expense{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(expenses)
}

// DecodeExpenses reads expenses written by EncodeExpenses.
func DecodeExpenses(r io.Reader) ([]Expense, error) {
	var expenses []Expense
	if err := json.NewDecoder(r).Decode(&expenses); err != nil {
		return nil, fmt.Errorf("cannot decode expenses: %w", err)
	}
	return expenses, nil
}

// Expenses returns a copy of all expenses, newest first.
func (l *Ledger) Expenses() []Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.expenses)
}

func (l *Ledger) index(id string) int {
	return slices.IndexFunc(l.expenses, func(e Expense) bool { return e.ID == id })
}

// Expense returns the expense id.
func (l *Ledger) Expense(id string) (Expense, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		return l.expenses[i], true
	}
	return Expense{}, false
}

// Add records a new expense on top of the list.
func (l *Ledger) Add(d ExpenseDraft) (Expense, bool, error) {
	if !d.Valid() {
		return Expense{}, false, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.newID()
	for id == "" || l.index(id) >= 0 {
		id = l.newID()
	}
	e := d.expense(id)
	l.expenses = append([]Expense{e}, l.expenses...)
	return e, true, l.save()
}

// Update replaces expense id, keeping its id and position.
func (l *Ledger) Update(id string, d ExpenseDraft) (bool, error) {
	if !d.Valid() {
		return false, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return false, nil
	}
	l.expenses = slices.Clone(l.expenses)
	l.expenses[i] = d.expense(id)
	return true, l.save()
}

// Remove deletes expense id once c confirmed it.
func (l *Ledger) Remove(id string, c Confirmer) (bool, error) {
	if _, ok := l.Expense(id); !ok {
		return false, nil
	}
	if !c.Confirm("確定要刪除此筆支出嗎？") {
		return false, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(id)
	if i < 0 {
		return false, nil
	}
	l.expenses = slices.Delete(slices.Clone(l.expenses), i, i+1)
	return true, l.save()
}

// save must be called with l.mu held.
func (l *Ledger) save() error {
	if err := save(l.storage, KeyExpenses, EncodeExpenses, l.expenses); err != nil {
		l.log.Error("cannot save expenses", zap.Error(err))
		return err
	}
	return nil
}

// Total returns the sum of all expenses in TWD.
func (l *Ledger) Total() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := NTD(0)
	for _, e := range l.expenses {
		total = total.Add(ToTWD(e.Amount))
	}
	return total
}

// TotalCAD returns Total converted back to CAD.
func (l *Ledger) TotalCAD() Money {
	return M(l.Total().Value().Div(Rate), CAD)
}

// Breakdown returns the spending per category, in order of first appearance
// in the list. Percentages are of the TWD total.
func (l *Ledger) Breakdown() []Share {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := NTD(0)
	var shares []Share
	for _, e := range l.expenses {
		total = total.Add(ToTWD(e.Amount))
		i := slices.IndexFunc(shares, func(s Share) bool { return s.Category == e.Category })
		if i < 0 {
			shares = append(shares, Share{Category: e.Category, Amount: NTD(0)})
			i = len(shares) - 1
		}
		shares[i].Amount = shares[i].Amount.Add(ToTWD(e.Amount))
	}
	for i := range shares {
		if !total.IsZero() {
			shares[i].Percent = int(shares[i].Amount.Value().Div(total.Value()).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
	}
	return shares
}
