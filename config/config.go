package config

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config credit config
type Config struct {
	DB        db.Config `json:"db"`
	Redis     Redis     `json:"redis"`
	Swapper   Endpoint  `json:"swapper"`
	Custodian Endpoint  `json:"custodian"`
	Executor  Executor  `json:"executor"`
	Admins    []string  `json:"admins"`
}

// Redis redis config
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// Endpoint an external http collaborator
type Endpoint struct {
	URL string `json:"url"`
}

// Executor executor config
type Executor struct {
	// MaxSlippage protocol wide slippage ceiling, used when the property
	// store carries no override
	MaxSlippage decimal.Decimal `json:"max_slippage"`
}
