package quote

import (
	"context"
	"fmt"
	"time"

	"credit/core"

	"github.com/go-redis/redis"
	"github.com/shopspring/decimal"
)

// QuoteStore caches swap estimates for the read-only preview endpoint.
// Estimates go stale quickly, so entries expire on a short TTL.
type QuoteStore interface {
	SaveEstimate(ctx context.Context, coinIn core.Coin, denomOut string, amountOut decimal.Decimal) error
	FindEstimate(ctx context.Context, coinIn core.Coin, denomOut string) (decimal.Decimal, bool, error)
}

type quoteStore struct {
	redis *redis.Client
	exp   time.Duration
}

// New new quote store
func New(redis *redis.Client, exp time.Duration) QuoteStore {
	return &quoteStore{
		redis: redis,
		exp:   exp,
	}
}

func (s *quoteStore) SaveEstimate(ctx context.Context, coinIn core.Coin, denomOut string, amountOut decimal.Decimal) error {
	k := s.estimateKey(coinIn, denomOut)
	return s.redis.Set(k, []byte(amountOut.String()), s.exp).Err()
}

func (s *quoteStore) FindEstimate(ctx context.Context, coinIn core.Coin, denomOut string) (decimal.Decimal, bool, error) {
	bs, err := s.redis.Get(s.estimateKey(coinIn, denomOut)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}

	amount, err := decimal.NewFromString(string(bs))
	if err != nil {
		return decimal.Zero, false, err
	}

	return amount, true, nil
}

func (s *quoteStore) estimateKey(coinIn core.Coin, denomOut string) string {
	return fmt.Sprintf("credit:estimate:%s:%s:%s", coinIn.Denom, coinIn.Amount, denomOut)
}
