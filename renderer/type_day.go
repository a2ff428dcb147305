package renderer

import (
	"github.com/etnz/aurora"
	"github.com/etnz/aurora/agent"
	"github.com/etnz/aurora/date"
)

// Day is the view of one day of the itinerary.
type Day struct {
	Date        date.Date       `json:"date"`
	Number      int             `json:"number"` // 1-based trip day
	Weekday     string          `json:"weekday"`
	Weather     *aurora.Weather `json:"weather,omitempty"`
	AuroraNight bool            `json:"auroraNight"`
	Location    string          `json:"location,omitempty"`
	Forecast    *Forecast       `json:"forecast,omitempty"`
	Entries     []DayEntry      `json:"entries"`
}

// DayEntry is a row of the day.
type DayEntry struct {
	Index    int    `json:"index"` // 1-based position, as used by the mv command
	ID       string `json:"id"`
	Time     string `json:"time"`
	Category string `json:"category"`
	Location string `json:"location"`
	MapURL   string `json:"mapUrl"`
	Note     string `json:"note,omitempty"`
}

// NewDay creates the view of entries on d. forecast is only shown on
// aurora nights, it may be nil.
func NewDay(d date.Date, entries []aurora.Entry, forecast *agent.Result[agent.Forecast]) *Day {
	day := &Day{
		Date:        d,
		Number:      aurora.DayNumber(d),
		Weekday:     d.Weekday().String(),
		AuroraNight: aurora.IsAuroraNight(d),
	}
	if w, ok := aurora.WeatherOn(d); ok {
		day.Weather = &w
	}
	if day.AuroraNight {
		day.Location = aurora.AuroraLocation
		if forecast != nil && forecast.Done() {
			day.Forecast = NewForecast(d, aurora.AuroraLocation, *forecast)
		}
	}
	for i, e := range entries {
		day.Entries = append(day.Entries, DayEntry{
			Index:    i + 1,
			ID:       e.ID,
			Time:     e.Time,
			Category: e.Category.Label() + " " + e.Category.EnLabel(),
			Location: cell(e.Location),
			MapURL:   aurora.MapURL(e.Location),
			Note:     cell(e.Note),
		})
	}
	return day
}

// Dates is the list of trip dates.
type Dates struct {
	Selected date.Date  `json:"selected"`
	Days     []DateLine `json:"days"`
}

// DateLine is one trip date.
type DateLine struct {
	Date        date.Date `json:"date"`
	Number      int       `json:"number"`
	MonthDay    string    `json:"monthDay"`
	Weather     string    `json:"weather"`
	Entries     int       `json:"entries"`
	AuroraNight bool      `json:"auroraNight"`
	Selected    bool      `json:"selected"`
}

// NewDates creates the view of all trip dates of s.
func NewDates(s aurora.Schedule, selected date.Date) *Dates {
	v := &Dates{Selected: selected}
	for _, d := range aurora.TripDates() {
		line := DateLine{
			Date:        d,
			Number:      aurora.DayNumber(d),
			MonthDay:    d.MonthDay(),
			Entries:     len(s[d]),
			AuroraNight: aurora.IsAuroraNight(d),
			Selected:    d == selected,
		}
		if w, ok := aurora.WeatherOn(d); ok {
			line.Weather = w.Condition.Icon() + " " + w.Label
		}
		v.Days = append(v.Days, line)
	}
	return v
}
