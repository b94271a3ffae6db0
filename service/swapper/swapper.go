package swapper

import (
	"context"
	"fmt"

	"credit/core"
	"credit/pkg/resthttp"

	"github.com/shopspring/decimal"
)

// Config swapper service config
type Config struct {
	Endpoint string `json:"endpoint" valid:"required"`
}

type swapperService struct {
	cfg Config
}

// New new swapper service backed by the external swap venue's HTTP api
func New(cfg Config) core.Swapper {
	return &swapperService{
		cfg: cfg,
	}
}

type swapOrder struct {
	DenomIn  string          `json:"denom_in"`
	AmountIn decimal.Decimal `json:"amount_in"`
	DenomOut string          `json:"denom_out"`
	MinOut   decimal.Decimal `json:"min_out,omitempty"`
}

type swapResult struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

func (s *swapperService) Estimate(ctx context.Context, coinIn core.Coin, denomOut string) (decimal.Decimal, error) {
	var result swapResult
	_, err := resthttp.Execute(
		resthttp.Request(ctx),
		"POST",
		s.url("/estimates"),
		swapOrder{
			DenomIn:  coinIn.Denom,
			AmountIn: coinIn.Amount,
			DenomOut: denomOut,
		},
		&result,
	)
	if err != nil {
		return decimal.Zero, err
	}

	return result.Amount, nil
}

func (s *swapperService) Execute(ctx context.Context, coinIn core.Coin, denomOut string, minOut decimal.Decimal) (decimal.Decimal, error) {
	var result swapResult
	status, err := resthttp.Execute(
		resthttp.Request(ctx),
		"POST",
		s.url("/swaps"),
		swapOrder{
			DenomIn:  coinIn.Denom,
			AmountIn: coinIn.Amount,
			DenomOut: denomOut,
			MinOut:   minOut,
		},
		&result,
	)
	if err != nil {
		// the venue answers 4xx when min_out cannot be honored
		if status >= 400 && status < 500 {
			return decimal.Zero, &core.SwapRejectedError{
				MinOut: minOut,
				Reason: err.Error(),
			}
		}

		return decimal.Zero, err
	}

	return result.Amount, nil
}

func (s *swapperService) url(path string) string {
	return fmt.Sprintf("%s%s", s.cfg.Endpoint, path)
}
