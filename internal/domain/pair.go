// Package domain defines core data structures used throughout the status service.
package domain

import "fmt"

// Pair currency pair quoted by the upstream platform.
type Pair struct {
	// From base currency symbol.
	From string
	// To quote currency symbol.
	To string
}

// EURUSD the only pair the service reads prices for.
var EURUSD = Pair{From: "EUR", To: "USD"}

// String returns the display representation, e.g. EUR/USD.
func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.From, p.To)
}

// Symbol returns the concatenated symbol used in upstream paths, e.g. EURUSD.
func (p Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
