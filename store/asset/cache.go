package asset

import (
	"context"
	"fmt"
	"time"

	"credit/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps store with an expiring LRU. The whitelist changes rarely and
// is read once per swap action.
func Cache(store core.AssetStore, exp time.Duration) core.AssetStore {
	return &cacheAssetStore{
		AssetStore: store,
		cache:      gcache.New(512).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheAssetStore struct {
	core.AssetStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheAssetStore) Save(ctx context.Context, asset *core.Asset) error {
	if err := s.AssetStore.Save(ctx, asset); err != nil {
		return err
	}

	s.cache.Remove(s.assetKey(asset.Denom))
	return nil
}

func (s *cacheAssetStore) Find(ctx context.Context, denom string) (*core.Asset, bool, error) {
	key := s.assetKey(denom)
	if v, err := s.cache.Get(key); err == nil {
		if asset, ok := v.(*core.Asset); ok {
			return asset, false, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		asset, notFound, err := s.AssetStore.Find(ctx, denom)
		if err != nil || notFound {
			return nil, err
		}

		s.cache.Set(key, asset)
		return asset, nil
	})

	if err != nil {
		return nil, false, err
	}

	asset, ok := v.(*core.Asset)
	if !ok || asset == nil {
		return nil, true, nil
	}

	return asset, false, nil
}

func (s *cacheAssetStore) assetKey(denom string) string {
	return fmt.Sprintf("asset:denom:%s", denom)
}
