package models

import "github.com/shopspring/decimal"

func init() {
	// Prices are rendered as JSON numbers, matching what clients already parse
	decimal.MarshalJSONWithoutQuotes = true
}

// Money columns are NUMERIC(10, 2)
const moneyScale = 2

// MaxMoneyAmount is the largest amount a money column can hold
var MaxMoneyAmount = decimal.New(9_999_999_999, -moneyScale)

// validateMoney rejects amounts the money columns would overflow or round
func validateMoney(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewValidationError(field, "amount cannot be negative")
	}
	if amount.GreaterThan(MaxMoneyAmount) {
		return NewValidationError(field, "amount is too large")
	}
	if !amount.Equal(amount.Round(moneyScale)) {
		return NewValidationError(field, "amount can have at most 2 decimal places")
	}
	return nil
}
