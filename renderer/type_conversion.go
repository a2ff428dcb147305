package renderer

import (
	"github.com/etnz/aurora"
	"github.com/shopspring/decimal"
)

// Conversion is the view of a CAD to TWD conversion.
type Conversion struct {
	CAD      aurora.Money `json:"cad"`
	Region   string       `json:"region"`
	TaxLabel string       `json:"taxLabel"`
	Rate     string       `json:"rate"`
	TWD      aurora.Money `json:"twd"`
}

// NewConversion converts a CAD sticker price, sales tax of r included.
func NewConversion(cad decimal.Decimal, r aurora.Region) *Conversion {
	return &Conversion{
		CAD:      aurora.M(cad, aurora.CAD),
		Region:   r.String(),
		TaxLabel: r.TaxLabel(),
		Rate:     aurora.Rate.String(),
		TWD:      aurora.Convert(cad, r),
	}
}
