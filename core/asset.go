package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AssetStore host ledger balances and allowances
type AssetStore interface {
	Balance(ctx context.Context, assetID, holder string) (decimal.Decimal, error)
	SetBalance(ctx context.Context, assetID, holder string, amount decimal.Decimal) error
	Allowance(ctx context.Context, assetID, owner, spender string) (decimal.Decimal, error)
	SetAllowance(ctx context.Context, assetID, owner, spender string, amount decimal.Decimal) error
}

// Asset transfer surface of a fungible asset.
//
// Implementations are foreign code: a transfer is only trusted when it
// returns true with a nil error.
type Asset interface {
	ID() string
	TransferFrom(ctx context.Context, book AssetStore, spender, from, to string, amount decimal.Decimal) (bool, error)
	Transfer(ctx context.Context, book AssetStore, from, to string, amount decimal.Decimal) (bool, error)
	BalanceOf(ctx context.Context, book AssetStore, holder string) (decimal.Decimal, error)
}

// AssetRegistry resolve asset implementations
type AssetRegistry interface {
	Find(ctx context.Context, assetID string) (Asset, error)
}

// LedgerService host ledger operations performed outside the vault
type LedgerService interface {
	Mint(ctx context.Context, assetID, to string, amount decimal.Decimal) error
	Approve(ctx context.Context, assetID, owner, spender string, amount decimal.Decimal) error
	Balance(ctx context.Context, assetID, holder string) (decimal.Decimal, error)
	Allowance(ctx context.Context, assetID, owner, spender string) (decimal.Decimal, error)
}

// Balance host ledger balance row
type Balance struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Holder    string          `sql:"size:36" json:"holder"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount"`
	Version   int64           `json:"version"`
}

// Allowance host ledger allowance row
type Allowance struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Owner     string          `sql:"size:36" json:"owner"`
	Spender   string          `sql:"size:36" json:"spender"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount"`
	Version   int64           `json:"version"`
}
