package aurora

import (
	"slices"

	"github.com/etnz/aurora/date"
)

// Condition is the sky forecast of a day.
type Condition int

const (
	Sunny Condition = iota
	PartlyCloudy
	Cloudy
	Rain
	Snow
)

// Icon returns a terminal friendly pictogram.
func (c Condition) Icon() string {
	switch c {
	case Sunny:
		return "☀️"
	case PartlyCloudy:
		return "⛅"
	case Cloudy:
		return "☁️"
	case Rain:
		return "🌧️"
	case Snow:
		return "❄️"
	default:
		return "?"
	}
}

// Weather is the expected weather of a trip day.
// It is keyed by date, not by content: a shifted day keeps the weather of its date.
type Weather struct {
	Temp      int // °C
	Condition Condition
	Label     string
	EnLabel   string
}

var weather = map[date.Date]Weather{
	date.New(2024, 2, 18): {-5, Sunny, "晴朗", "Sunny"},
	date.New(2024, 2, 19): {-3, PartlyCloudy, "多雲時晴", "Partly Cloudy"},
	date.New(2024, 2, 20): {2, Rain, "短暫雨", "Light Rain"},
	date.New(2024, 2, 21): {0, Cloudy, "陰天", "Cloudy"},
	date.New(2024, 2, 22): {-2, Snow, "小雪", "Light Snow"},
	date.New(2024, 2, 23): {-8, Sunny, "晴朗", "Sunny"},
	date.New(2024, 2, 24): {-15, Snow, "下雪", "Snowy"},
	date.New(2024, 2, 25): {-22, Cloudy, "多雲", "Cloudy"},
	date.New(2024, 2, 26): {-18, Sunny, "極寒晴朗", "Very Cold & Sunny"},
	date.New(2024, 2, 27): {-20, Snow, "小雪", "Light Snow"},
	date.New(2024, 2, 28): {-10, PartlyCloudy, "多雲時晴", "Partly Cloudy"},
	date.New(2024, 3, 1):  {4, Rain, "有雨", "Rainy"},
	date.New(2024, 3, 2):  {2, Sunny, "晴朗", "Sunny"},
}

// WeatherOn returns the weather expected on d.
func WeatherOn(d date.Date) (Weather, bool) {
	w, ok := weather[d]
	return w, ok
}

// TripDates returns the known trip dates in chronological order.
// The list is fixed, there is no 2024-02-29 on this trip.
func TripDates() []date.Date {
	dates := make([]date.Date, 0, len(weather))
	for d := range weather {
		dates = append(dates, d)
	}
	date.Sort(dates)
	return dates
}

// IsTripDate reports whether d is one of the TripDates.
func IsTripDate(d date.Date) bool {
	_, ok := weather[d]
	return ok
}

// DayNumber returns the 1-based position of d in the trip ("D1"), or 0.
func DayNumber(d date.Date) int {
	return slices.Index(TripDates(), d) + 1
}

// AuroraLocation is where the aurora nights are spent.
const AuroraLocation = "Yellowknife"

// AuroraNights is the range of nights spent under the aurora oval.
var AuroraNights = date.NewRange(date.New(2024, 2, 24), date.New(2024, 2, 27))

// IsAuroraNight reports whether a forecast is worth asking for d.
func IsAuroraNight(d date.Date) bool { return AuroraNights.Contains(d) }
