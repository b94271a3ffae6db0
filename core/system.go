package core

import (
	"github.com/shopspring/decimal"
)

// System stores system information.
type System struct {
	Admins      []string
	MaxSlippage decimal.Decimal
	Version     string
}

// IsAdmin is admin
func (s *System) IsAdmin(userID string) bool {
	if len(s.Admins) == 0 {
		return false
	}

	for _, a := range s.Admins {
		if a == userID {
			return true
		}
	}

	return false
}
