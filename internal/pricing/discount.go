// Package pricing derives the human-readable percentage-off label shown
// next to a variant's sale price.
package pricing

import (
	"github.com/shopspring/decimal"
)

// NoDiscount is the silent fallback for unusable inputs.
const NoDiscount = "0%"

var hundred = decimal.NewFromInt(100)

// Calculate derives a "<int>%" discount label from an original and a
// sale price. Unparseable inputs, non-positive prices, and sale >=
// original all yield "0%" as a value default, not an error. Halves
// round up: 33.5 -> "34%".
func Calculate(originalPrice, salePrice string) string {
	original, err := decimal.NewFromString(originalPrice)
	if err != nil {
		return NoDiscount
	}
	sale, err := decimal.NewFromString(salePrice)
	if err != nil {
		return NoDiscount
	}

	if original.Sign() <= 0 || sale.Sign() <= 0 || sale.GreaterThanOrEqual(original) {
		return NoDiscount
	}

	pct := original.Sub(sale).Div(original).Mul(hundred)
	return pct.Round(0).String() + "%"
}
