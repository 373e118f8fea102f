// Package currency converts CZK balances to EUR under an explicitly passed
// CZK-per-EUR rate. The rate is never ambient state; callers thread the
// current (or snapshot-time) rate into every call.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

var ErrInvalidRate = errors.New("exchange rate must be greater than zero")

// ToEUR converts value to EUR. EUR is the identity; CZK divides by rate.
func ToEUR(value decimal.Decimal, cur model.Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, ErrInvalidRate
	}
	switch cur {
	case model.CurrencyEUR:
		return value, nil
	case model.CurrencyCZK:
		return value.Div(rate), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported currency %q", cur)
	}
}

// SumEUR converts and sums a set of other-asset rows.
func SumEUR(assets []model.OtherAsset, rate decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range assets {
		converted, err := ToEUR(a.Value, a.Currency, rate)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(converted)
	}
	return total, nil
}
