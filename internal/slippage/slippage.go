// Package slippage computes the price-protection bound handed to the
// swapper. The policy is min_out = estimate * (1 - slippage), floored to the
// ledger precision, with the pre-trade estimate as the reference price.
package slippage

import (
	"credit/pkg/number"

	"github.com/shopspring/decimal"
)

// Precision ledger amounts carry at most 8 decimal places.
const Precision = 8

var one = decimal.New(1, 0)

// MinOut returns the smallest acceptable output amount for a swap quoted at
// estimate under the given tolerance.
func MinOut(estimate, tolerance decimal.Decimal) decimal.Decimal {
	return number.Floor(estimate.Mul(one.Sub(tolerance)), Precision)
}
