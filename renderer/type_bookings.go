package renderer

import "github.com/etnz/aurora"

// Bookings is the view of the booked flights and stays.
type Bookings struct {
	Flights []aurora.Flight `json:"flights"`
	Stays   []StayLine      `json:"stays"`
}

// StayLine is an accommodation with its number of nights.
type StayLine struct {
	aurora.Lodge
	Nights int `json:"nights"`
}

// NewBookings creates the view of all bookings.
func NewBookings() *Bookings {
	v := &Bookings{Flights: aurora.Flights()}
	for _, s := range aurora.Stays() {
		v.Stays = append(v.Stays, StayLine{Lodge: s, Nights: s.Nights()})
	}
	return v
}
