package slippage

import (
	"testing"

	"credit/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestMinOut(t *testing.T) {
	cases := []struct {
		estimate  string
		tolerance string
		want      string
	}{
		{"10000", "0", "10000"},
		{"10000", "0.6", "4000"},
		{"10000", "1", "0"},
		{"1234.56789", "0.5", "617.283945"},
		{"0.00000003", "0.5", "0.00000001"},
	}

	for _, c := range cases {
		got := MinOut(number.Decimal(c.estimate), number.Decimal(c.tolerance))
		assert.Equal(t, c.want, got.String(), "estimate %s tolerance %s", c.estimate, c.tolerance)
	}
}
