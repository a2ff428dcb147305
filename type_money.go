package aurora

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currencies used on the trip.
const (
	CAD = "CAD"
	TWD = "TWD"
)

// Money is an exact monetary value in a currency.
type Money struct {
	value decimal.Decimal // major unit
	cur   string
}

// M returns value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic(fmt.Sprintf("unsupported type %T", value))
	}
}

// Dollars returns v Canadian dollars.
func Dollars(v float64) Money { return M(v, CAD) }

// NTD returns v New Taiwan dollars.
func NTD(v float64) Money { return M(v, TWD) }

// currency returns a never nil currency definition.
func (m Money) currency() money.Currency { return *money.New(0, m.cur).Currency() }

// String formats the value with the currency symbol, e.g. "$120.00".
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) Currency() string            { return m.cur }
func (m Money) Value() decimal.Decimal      { return m.value }
func (m Money) Equal(n Money) bool          { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) Mul(f decimal.Decimal) Money { return Money{value: m.value.Mul(f), cur: m.cur} }

// Add sums two amounts of the same currency, a zero Money has no currency and adds to any.
func (m Money) Add(n Money) Money {
	switch {
	case m.cur == "":
		return Money{value: m.value.Add(n.value), cur: n.cur}
	case n.cur == "" || n.cur == m.cur:
		return Money{value: m.value.Add(n.value), cur: m.cur}
	default:
		panic("currency mismatch " + m.cur + "!=" + n.cur)
	}
}

// Rounded returns the value rounded to whole units, the way totals are displayed.
func (m Money) Rounded() int64 { return m.value.Round(0).IntPart() }

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", m.cur)
	w.Append("amount", m.value.Round(int32(m.currency().Fraction)))
	return w.MarshalJSON()
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var jm struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(b, &jm); err != nil {
		return err
	}
	*m = Money{value: jm.Amount, cur: jm.Currency}
	return nil
}
