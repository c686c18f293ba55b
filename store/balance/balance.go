// Package balance host ledger balances and allowances.
//
// A store is bound to one transaction and remembers the row version it read
// for every key; writes only apply on that version and fail with
// db.ErrOptimisticLock when another transaction got there first. Reads go
// through Update() as well: View() is the read pool, outside the transaction.
package balance

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type (
	balanceKey struct {
		asset  string
		holder string
	}

	allowanceKey struct {
		asset   string
		owner   string
		spender string
	}
)

type balanceStore struct {
	db         *db.DB
	balances   map[balanceKey]int64
	allowances map[allowanceKey]int64
}

// New new balance store
func New(db *db.DB) core.AssetStore {
	return &balanceStore{
		db:         db,
		balances:   make(map[balanceKey]int64),
		allowances: make(map[allowanceKey]int64),
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_balances_asset_holder", "asset_id", "holder").Error; err != nil {
			return err
		}

		tx = db.Update().Model(core.Allowance{})
		if err := tx.AutoMigrate(core.Allowance{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_allowances_asset_owner_spender", "asset_id", "owner", "spender").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *balanceStore) Balance(ctx context.Context, assetID, holder string) (decimal.Decimal, error) {
	var balance core.Balance
	err := s.db.Update().Where("asset_id = ? AND holder = ?", assetID, holder).First(&balance).Error
	if store.IsErrNotFound(err) {
		s.balances[balanceKey{assetID, holder}] = 0
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, err
	}

	s.balances[balanceKey{assetID, holder}] = balance.Version
	return balance.Amount, nil
}

func (s *balanceStore) SetBalance(ctx context.Context, assetID, holder string, amount decimal.Decimal) error {
	key := balanceKey{assetID, holder}
	version, ok := s.balances[key]
	if !ok {
		if _, err := s.Balance(ctx, assetID, holder); err != nil {
			return err
		}

		version = s.balances[key]
	}

	if version == 0 {
		if err := s.db.Update().Create(&core.Balance{
			AssetID: assetID,
			Holder:  holder,
			Amount:  amount,
			Version: 1,
		}).Error; err != nil {
			return err
		}

		s.balances[key] = 1
		return nil
	}

	tx := s.db.Update().Model(core.Balance{}).
		Where("asset_id = ? AND holder = ? AND version = ?", assetID, holder, version).
		Updates(map[string]interface{}{
			"amount":  amount,
			"version": gorm.Expr("version + 1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	s.balances[key] = version + 1
	return nil
}

func (s *balanceStore) Allowance(ctx context.Context, assetID, owner, spender string) (decimal.Decimal, error) {
	var allowance core.Allowance
	err := s.db.Update().
		Where("asset_id = ? AND owner = ? AND spender = ?", assetID, owner, spender).
		First(&allowance).Error
	if store.IsErrNotFound(err) {
		s.allowances[allowanceKey{assetID, owner, spender}] = 0
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, err
	}

	s.allowances[allowanceKey{assetID, owner, spender}] = allowance.Version
	return allowance.Amount, nil
}

func (s *balanceStore) SetAllowance(ctx context.Context, assetID, owner, spender string, amount decimal.Decimal) error {
	key := allowanceKey{assetID, owner, spender}
	version, ok := s.allowances[key]
	if !ok {
		if _, err := s.Allowance(ctx, assetID, owner, spender); err != nil {
			return err
		}

		version = s.allowances[key]
	}

	if version == 0 {
		if err := s.db.Update().Create(&core.Allowance{
			AssetID: assetID,
			Owner:   owner,
			Spender: spender,
			Amount:  amount,
			Version: 1,
		}).Error; err != nil {
			return err
		}

		s.allowances[key] = 1
		return nil
	}

	tx := s.db.Update().Model(core.Allowance{}).
		Where("asset_id = ? AND owner = ? AND spender = ? AND version = ?", assetID, owner, spender, version).
		Updates(map[string]interface{}{
			"amount":  amount,
			"version": gorm.Expr("version + 1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	s.allowances[key] = version + 1
	return nil
}
