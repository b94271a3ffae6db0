package transfer

import (
	"context"

	"credit/core"

	"github.com/fox-one/pkg/store/db"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.TransferStore {
	return &transferStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transferStore) Create(ctx context.Context, tx *db.DB, transfers []*core.Transfer) error {
	for _, t := range transfers {
		if err := tx.Update().Where("trace_id=?", t.TraceID).FirstOrCreate(t).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *transferStore) ListPending(ctx context.Context, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if err := s.db.View().Where("status=?", core.TransferStatusPending).Order("id").Limit(limit).Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}

func (s *transferStore) Handled(ctx context.Context, traceID string) error {
	return s.db.Update().Model(core.Transfer{}).
		Where("trace_id=? and status=?", traceID, core.TransferStatusPending).
		Updates(map[string]interface{}{"status": core.TransferStatusHandled}).Error
}
