package batch

import (
	"context"

	"credit/core"

	"github.com/fox-one/pkg/store/db"
)

type batchStore struct {
	db *db.DB
}

// New new batch store
func New(db *db.DB) core.BatchStore {
	return &batchStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Batch{})
		if err := tx.AutoMigrate(core.Batch{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *batchStore) Create(ctx context.Context, tx *db.DB, batch *core.Batch) error {
	return tx.Update().Where("trace_id=?", batch.TraceID).FirstOrCreate(batch).Error
}

func (s *batchStore) FindByTraceID(ctx context.Context, traceID string) (*core.Batch, error) {
	var batch core.Batch
	if err := s.db.View().Where("trace_id=?", traceID).First(&batch).Error; err != nil {
		return nil, err
	}

	return &batch, nil
}

func (s *batchStore) ListByAccount(ctx context.Context, accountID string, limit int) ([]*core.Batch, error) {
	var batches []*core.Batch
	if err := s.db.View().Where("account_id=?", accountID).Order("id desc").Limit(limit).Find(&batches).Error; err != nil {
		return nil, err
	}

	return batches, nil
}
