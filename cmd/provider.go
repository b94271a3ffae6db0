package cmd

import (
	"time"

	"credit/core"
	"credit/service/executor"
	"credit/service/payout"
	"credit/service/swapper"
	"credit/store/account"
	"credit/store/asset"
	"credit/store/batch"
	"credit/store/position"
	"credit/store/quote"
	"credit/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideSystem() *core.System {
	return &core.System{
		Admins:      cfg.Admins,
		MaxSlippage: cfg.Executor.MaxSlippage,
		Version:     rootCmd.Version,
	}
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

// ---------------store-----------------------------------------

func provideAccountStore(db *db.DB) core.AccountStore {
	return account.New(db)
}

func providePositionStore(db *db.DB) core.PositionStore {
	return position.New(db)
}

func provideAssetStore(db *db.DB) core.AssetStore {
	return asset.Cache(asset.New(db), time.Minute)
}

func provideBatchStore(db *db.DB) core.BatchStore {
	return batch.New(db)
}

func provideTransferStore(db *db.DB) core.TransferStore {
	return transfer.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideQuoteStore() quote.QuoteStore {
	return quote.New(provideRedis(), 10*time.Second)
}

// ------------------service------------------------------------

func provideSwapperService() core.Swapper {
	return swapper.New(swapper.Config{
		Endpoint: cfg.Swapper.URL,
	})
}

func providePayoutService() core.PayoutService {
	return payout.New(payout.Config{
		Endpoint: cfg.Custodian.URL,
	})
}

func provideExecutorService(database *db.DB) core.Executor {
	return executor.New(
		database,
		provideAccountStore(database),
		providePositionStore(database),
		provideAssetStore(database),
		provideBatchStore(database),
		provideTransferStore(database),
		providePropertyStore(database),
		provideQuoteStore(),
		provideSwapperService(),
		executor.Config{
			MaxSlippage: cfg.Executor.MaxSlippage,
		},
	)
}
