package domain

import "github.com/shopspring/decimal"

// PricePrecision number of decimal digits kept in a price quote.
const PricePrecision = 5

// RoundPrice rounds a raw price to PricePrecision digits, half away from zero.
func RoundPrice(price float64) float64 {
	rounded, _ := decimal.NewFromFloat(price).Round(PricePrecision).Float64()
	return rounded
}
