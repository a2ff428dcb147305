// Package date implements a calendar day with no time of day, the key of
// every per-day structure in a trip.
package date

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const readFormat = "2006-1-2" // permissive, 2024-2-8 is ok

// Format is the ISO-8601 form used to write dates.
const Format = "2006-01-02"

// Date represent a day.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns the canonical midnight UTC for that day.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date, 2024-02-30 becomes 2024-03-01.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current local date.
func Today() Date { return New(time.Now().Date()) }

func (d Date) Year() int             { return d.y }
func (d Date) Month() time.Month     { return d.m }
func (d Date) Day() int              { return d.d }
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }
func (d Date) IsZero() bool          { return d == Date{} }
func (d Date) Before(x Date) bool    { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool     { return d.time().After(x.time()) }
func (d Date) Add(days int) Date     { return New(d.y, d.m, d.d+days) }
func (d Date) String() string        { return d.time().Format(Format) }
func (d Date) Compare(x Date) int    { return d.time().Compare(x.time()) }
func (d Date) Equal(x Date) bool     { return d == x }
func (d Date) MonthDay() string      { return d.time().Format("01/02") }

// At returns the instant at hour:minute on that day in loc.
func (d Date) At(hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.y, d.m, d.d, hour, minute, 0, 0, loc)
}

// Parse parses a Date, it accepts single digit month and day.
func Parse(str string) (Date, error) {
	on, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Sort sorts dates chronologically in place.
func Sort(dates []Date) { slices.SortFunc(dates, Date.Compare) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	p, err := Parse(str)
	if err != nil {
		return err
	}
	*d = p
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// MarshalText lets a Date be a json object key.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
