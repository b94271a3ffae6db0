package position

import (
	"context"

	"credit/core"

	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.PositionStore {
	return &positionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) FindByAccount(ctx context.Context, accountID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("account_id=?", accountID).Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return tx.Update().Create(position).Error
	}

	version := position.Version
	position.Version++
	return tx.Update().Model(core.Position{}).
		Where("id=? and version=?", position.ID, version).
		Updates(map[string]interface{}{
			"amount":  position.Amount,
			"version": position.Version,
		}).Error
}
