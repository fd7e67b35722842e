// Package domain defines core data structures used throughout the status service.
package domain

// AccountSnapshot canonical view of the first upstream account.
// Built fresh on every balance query, never cached.
type AccountSnapshot struct {
	// AccountID nil when no id field is present.
	AccountID *string `json:"account_id"`
	// Balance falls back to equity when the account has no balance field.
	Balance *float64 `json:"balance"`
	// Equity never falls back to balance.
	Equity *float64 `json:"equity"`
	// Raw original upstream entry.
	Raw map[string]any `json:"raw"`
}

// BalanceOrZero returns the balance, or 0 when absent.
func (s AccountSnapshot) BalanceOrZero() float64 {
	if s.Balance == nil {
		return 0
	}
	return *s.Balance
}

// EquityOrZero returns the equity, or 0 when absent.
func (s AccountSnapshot) EquityOrZero() float64 {
	if s.Equity == nil {
		return 0
	}
	return *s.Equity
}
