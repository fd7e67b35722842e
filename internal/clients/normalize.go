package clients

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
)

var (
	accountIDKeys = []string{"AccountId", "id", "account_id"}
	balanceKeys   = []string{"Balance", "balance", "Equity", "equity"}
	equityKeys    = []string{"Equity", "equity"}
	closeKeys     = []string{"Close", "close", "bidClose", "askClose"}
)

// NormalizeAccount picks the first account of an /accounts payload. The payload
// may be a mapping with an "Accounts" list, a bare list, or a single mapping.
func NormalizeAccount(payload any) domain.AccountSnapshot {
	account := firstAccount(payload)

	snapshot := domain.AccountSnapshot{Raw: account}
	if v, ok := firstPresent(account, accountIDKeys...); ok {
		id := formatID(v)
		snapshot.AccountID = &id
	}
	if v, ok := firstPresent(account, balanceKeys...); ok {
		if f, ok := toFloat(v); ok {
			snapshot.Balance = &f
		}
	}
	if v, ok := firstPresent(account, equityKeys...); ok {
		if f, ok := toFloat(v); ok {
			snapshot.Equity = &f
		}
	}

	return snapshot
}

// NormalizePrice returns the close of the last bar rounded to domain.PricePrecision.
func NormalizePrice(payload any) (float64, error) {
	bars, ok := payload.([]any)
	if !ok || len(bars) == 0 {
		return 0, errors.Wrapf(domain.ErrUnexpectedPayload, "price bars: %v", payload)
	}

	bar, ok := bars[len(bars)-1].(map[string]any)
	if !ok {
		return 0, errors.Wrapf(domain.ErrUnexpectedPayload, "price bar: %v", bars[len(bars)-1])
	}

	v, ok := firstPresent(bar, closeKeys...)
	if !ok {
		return 0, errors.Wrapf(domain.ErrUnexpectedPayload, "price bar has no close: %v", bar)
	}
	price, ok := toFloat(v)
	if !ok {
		return 0, errors.Wrapf(domain.ErrUnexpectedPayload, "close is not a number: %v", v)
	}

	return domain.RoundPrice(price), nil
}

func firstAccount(payload any) map[string]any {
	var accounts []any
	switch p := payload.(type) {
	case map[string]any:
		if list, ok := p["Accounts"]; ok {
			accounts, _ = list.([]any)
		} else {
			accounts = []any{p}
		}
	case []any:
		accounts = p
	default:
		accounts = []any{p}
	}

	if len(accounts) == 0 {
		return map[string]any{}
	}
	account, ok := accounts[0].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return account
}

// firstPresent returns the first value under keys that is set and non-empty:
// nil, "", 0 and false are skipped. When every key is empty the value of the
// last key is returned as is, so a literal zero there still counts.
func firstPresent(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && !isEmpty(v) {
			return v, true
		}
	}
	if len(keys) == 0 {
		return nil, false
	}
	v, ok := m[keys[len(keys)-1]]
	return v, ok && v != nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// toFloat coerces JSON numbers and numeric strings. NaN and infinities are rejected.
func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
