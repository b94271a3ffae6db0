package asset

import (
	"context"
	"testing"
	"time"

	"credit/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAssetStore struct {
	assets map[string]*core.Asset
	finds  int
}

func (s *countingAssetStore) Save(ctx context.Context, asset *core.Asset) error {
	s.assets[asset.Denom] = asset
	return nil
}

func (s *countingAssetStore) Find(ctx context.Context, denom string) (*core.Asset, bool, error) {
	s.finds++
	if asset, ok := s.assets[denom]; ok {
		return asset, false, nil
	}

	return nil, true, nil
}

func (s *countingAssetStore) All(ctx context.Context) ([]*core.Asset, error) {
	var assets []*core.Asset
	for _, a := range s.assets {
		assets = append(assets, a)
	}

	return assets, nil
}

func TestCacheFind(t *testing.T) {
	ctx := context.Background()
	underlying := &countingAssetStore{assets: map[string]*core.Asset{
		"uatom": {Denom: "uatom", Whitelisted: true},
	}}

	store := Cache(underlying, time.Minute)

	for i := 0; i < 3; i++ {
		asset, notFound, err := store.Find(ctx, "uatom")
		require.NoError(t, err)
		require.False(t, notFound)
		assert.True(t, asset.Whitelisted)
	}

	assert.Equal(t, 1, underlying.finds)
}

func TestCacheFindNotFound(t *testing.T) {
	ctx := context.Background()
	underlying := &countingAssetStore{assets: map[string]*core.Asset{}}
	store := Cache(underlying, time.Minute)

	_, notFound, err := store.Find(ctx, "ujake")
	require.NoError(t, err)
	assert.True(t, notFound)

	// misses are not cached, a later upsert must become visible
	require.NoError(t, store.Save(ctx, &core.Asset{Denom: "ujake", Whitelisted: true}))

	asset, notFound, err := store.Find(ctx, "ujake")
	require.NoError(t, err)
	require.False(t, notFound)
	assert.True(t, asset.Whitelisted)
}

func TestCacheSaveInvalidates(t *testing.T) {
	ctx := context.Background()
	underlying := &countingAssetStore{assets: map[string]*core.Asset{
		"uatom": {Denom: "uatom", Whitelisted: true},
	}}
	store := Cache(underlying, time.Minute)

	_, _, err := store.Find(ctx, "uatom")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, &core.Asset{Denom: "uatom", Whitelisted: false}))

	asset, _, err := store.Find(ctx, "uatom")
	require.NoError(t, err)
	assert.False(t, asset.Whitelisted)
}
