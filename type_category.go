package aurora

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category classifies an itinerary entry.
type Category int

const (
	// Scenery is a sight, a tour or an activity.
	Scenery Category = iota
	// Food is a meal or a market.
	Food
	// Transport is any leg between two places: flights, ferries, buses, rides.
	Transport
	// Stay is a check-in or check-out.
	Stay
)

// Categories lists all categories in display order.
var Categories = []Category{Scenery, Food, Transport, Stay}

func (c Category) String() string {
	switch c {
	case Scenery:
		return "scenery"
	case Food:
		return "food"
	case Transport:
		return "transport"
	case Stay:
		return "stay"
	default:
		return "unknown"
	}
}

// Label returns the Traditional Chinese label.
func (c Category) Label() string {
	switch c {
	case Scenery:
		return "景點"
	case Food:
		return "美食"
	case Transport:
		return "交通"
	case Stay:
		return "住宿"
	default:
		return "?"
	}
}

// EnLabel returns the English label.
func (c Category) EnLabel() string {
	switch c {
	case Scenery:
		return "Scenery"
	case Food:
		return "Food"
	case Transport:
		return "Transport"
	case Stay:
		return "Stay"
	default:
		return "Unknown"
	}
}

// Theme returns the color theme used to badge the category.
func (c Category) Theme() string {
	switch c {
	case Scenery:
		return "emerald"
	case Food:
		return "orange"
	case Transport:
		return "blue"
	case Stay:
		return "purple"
	default:
		return "gray"
	}
}

// ParseCategory parses a category from its name (any case) or its Chinese label.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, c.String()) || s == c.Label() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q, want one of scenery, food, transport, stay", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	if c.String() == "unknown" {
		return nil, fmt.Errorf("cannot marshal category %d", int(c))
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = p
	return nil
}
