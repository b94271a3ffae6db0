package asset

import (
	"context"

	"credit/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type assetStore struct {
	db *db.DB
}

// New new asset store
func New(db *db.DB) core.AssetStore {
	return &assetStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Asset{})
		if err := tx.AutoMigrate(core.Asset{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetStore) Save(ctx context.Context, asset *core.Asset) error {
	return s.db.Tx(func(tx *db.DB) error {
		var existing core.Asset
		err := tx.Update().Where("denom=?", asset.Denom).First(&existing).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return tx.Update().Create(asset).Error
			}
			return err
		}

		asset.ID = existing.ID
		asset.Version = existing.Version + 1
		return tx.Update().Model(core.Asset{}).
			Where("id=? and version=?", existing.ID, existing.Version).
			Updates(asset).Error
	})
}

func (s *assetStore) Find(ctx context.Context, denom string) (*core.Asset, bool, error) {
	var asset core.Asset
	if err := s.db.View().Where("denom=?", denom).First(&asset).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, true, nil
		}
		return nil, false, err
	}

	return &asset, false, nil
}

func (s *assetStore) All(ctx context.Context) ([]*core.Asset, error) {
	var assets []*core.Asset
	if err := s.db.View().Find(&assets).Error; err != nil {
		return nil, err
	}

	return assets, nil
}
