package service

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

// identifierPattern matches the 12-character instrument code: two letters,
// nine alphanumerics, one final digit (the ISIN shape).
var identifierPattern = regexp.MustCompile(`^[A-Za-z]{2}[A-Za-z0-9]{9}[0-9]$`)

func validIdentifier(identifier string) bool {
	return identifierPattern.MatchString(identifier)
}

func validateTransactionInput(in model.TransactionInput, now time.Time) ValidationErrors {
	verrs := ValidationErrors{}

	if in.Date.IsZero() {
		verrs["date"] = "is required"
	} else if in.Date.After(now) {
		verrs["date"] = "must not be in the future"
	}

	if !validIdentifier(in.Identifier) {
		verrs["identifier"] = "must be a 12-character code: 2 letters, 9 alphanumerics, 1 digit"
	}

	if !in.Type.Valid() {
		verrs["type"] = "must be BUY or SELL"
	}

	if in.Units.LessThanOrEqual(decimal.Zero) {
		verrs["units"] = "must be greater than zero"
	}
	if in.PricePerUnit.LessThanOrEqual(decimal.Zero) {
		verrs["price_per_unit"] = "must be greater than zero"
	}
	if in.Fee.IsNegative() {
		verrs["fee"] = "must not be negative"
	}

	if len(verrs) == 0 {
		return nil
	}
	return verrs
}
