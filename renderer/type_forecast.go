package renderer

import (
	"github.com/etnz/aurora/agent"
	"github.com/etnz/aurora/date"
)

// Forecast is the view of an aurora forecast.
type Forecast struct {
	Date        date.Date `json:"date"`
	Location    string    `json:"location"`
	Chance      int       `json:"chance"`
	KpIndex     int       `json:"kpIndex"`
	Description string    `json:"description"`
	Fallback    bool      `json:"fallback"` // not an answer of the model
}

// NewForecast creates the view of a forecast result.
func NewForecast(d date.Date, location string, r agent.Result[agent.Forecast]) *Forecast {
	return &Forecast{
		Date:        d,
		Location:    location,
		Chance:      r.Value.Chance,
		KpIndex:     r.Value.KpIndex,
		Description: r.Value.Description,
		Fallback:    r.State == agent.Fallback,
	}
}
