package account

import (
	"context"

	"credit/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.AccountStore {
	return &accountStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Account{})
		if err := tx.AutoMigrate(core.Account{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Create(ctx context.Context, account *core.Account) error {
	return s.db.Update().Where("account_id=?", account.AccountID).FirstOrCreate(account).Error
}

func (s *accountStore) Find(ctx context.Context, accountID string) (*core.Account, error) {
	var account core.Account
	if err := s.db.View().Where("account_id=?", accountID).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (s *accountStore) FindByOwner(ctx context.Context, owner string) ([]*core.Account, error) {
	var accounts []*core.Account
	if err := s.db.View().Where("owner=?", owner).Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}
