// Package money centralizes currency arithmetic for 2-decimal BRL values.
// Every monetary figure stored or compared by the ledger and the settlement
// matcher goes through these helpers so rounding happens exactly once.
package money

import "github.com/shopspring/decimal"

// Tolerance is the absolute gap two amounts may differ by and still be
// considered equal when matching settlement items to cost records.
var Tolerance = decimal.NewFromFloat(0.01)

// Zero is the canonical zero amount.
var Zero = decimal.Zero

// Round2 rounds an amount to 2 decimal places, half away from zero.
func Round2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// Sum adds the provided amounts and rounds the result to 2 decimal places.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round2(total)
}

// ApproxEqual reports whether |a-b| is within Tolerance.
func ApproxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// OrZero coalesces a nullable amount to zero. Models call this once at the
// persistence boundary; downstream code never re-coalesces.
func OrZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}
