package domain

import "github.com/shopspring/decimal"

// RoundPrice applies the final rounding rule for customer-facing amounts:
// two decimal places, half rounded up. Intermediate ratios are never rounded.
func RoundPrice(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// PercentOff returns amount reduced by percent (0-100), unrounded.
func PercentOff(amount, percent decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(100).Sub(percent).Div(decimal.NewFromInt(100))
	return amount.Mul(multiplier)
}
