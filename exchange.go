package aurora

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is the fixed CAD to TWD exchange rate used everywhere on the trip
// (Bank of Taiwan estimate, 1 CAD ≈ 23.85 TWD).
var Rate = decimal.RequireFromString("23.85")

// Region is a Canadian sales tax jurisdiction.
type Region int

const (
	// NWT is the Northwest Territories: GST only.
	NWT Region = iota
	// BC is British Columbia: GST and PST.
	BC
)

var Regions = []Region{NWT, BC}

func (r Region) String() string {
	switch r {
	case NWT:
		return "NWT"
	case BC:
		return "BC"
	default:
		return "unknown"
	}
}

// TaxRate returns the sales tax rate of the region.
func (r Region) TaxRate() decimal.Decimal {
	switch r {
	case NWT:
		return decimal.RequireFromString("0.05")
	case BC:
		return decimal.RequireFromString("0.12")
	default:
		return decimal.Zero
	}
}

// TaxLabel details how the rate is made.
func (r Region) TaxLabel() string {
	switch r {
	case NWT:
		return "GST (5%) = 5%"
	case BC:
		return "GST (5%) + PST (7%) = 12%"
	default:
		return ""
	}
}

// ParseRegion parses "BC" or "NWT", any case.
func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if strings.EqualFold(strings.TrimSpace(s), r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown region %q, want BC or NWT", s)
}

// ParseAmount reads a decimal amount as typed by the user, anything that is
// not a number counts as zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Convert returns the price in TWD of a CAD sticker price once taxed in r:
// twd = cad * (1 + tax(r)) * Rate.
func Convert(cad decimal.Decimal, r Region) Money {
	return M(cad.Mul(decimal.NewFromInt(1).Add(r.TaxRate())).Mul(Rate), TWD)
}

// ToTWD returns m in TWD, CAD amounts are converted at Rate without tax.
func ToTWD(m Money) Money {
	switch m.Currency() {
	case CAD:
		return M(m.Value().Mul(Rate), TWD)
	default:
		return M(m.Value(), TWD)
	}
}
