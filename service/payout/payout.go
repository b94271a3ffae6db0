package payout

import (
	"context"
	"fmt"

	"credit/core"
	"credit/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// Config payout service config
type Config struct {
	Endpoint string `json:"endpoint" valid:"required"`
}

type payoutService struct {
	cfg Config
}

// New new payout service backed by the custodian's HTTP api
func New(cfg Config) core.PayoutService {
	return &payoutService{
		cfg: cfg,
	}
}

func (s *payoutService) Pay(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("transfer", transfer.TraceID)

	_, err := resthttp.Execute(
		resthttp.WithRequestID(ctx, transfer.TraceID),
		"POST",
		fmt.Sprintf("%s/payouts", s.cfg.Endpoint),
		transfer,
		nil,
	)
	if err != nil {
		log.WithError(err).Errorln("payout failed")
		return err
	}

	return nil
}
