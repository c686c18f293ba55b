package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// DepositInput deposit arguments
type DepositInput struct {
	AssetID   string          `json:"asset_id"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient string          `json:"recipient"`
}

// WithdrawalInput withdrawal request arguments
type WithdrawalInput struct {
	AssetID     string          `json:"asset_id"`
	Amount      decimal.Decimal `json:"amount"`
	Destination string          `json:"destination"`
}

// ExecutionInput withdrawal execution arguments
type ExecutionInput struct {
	AssetID      string          `json:"asset_id"`
	Amount       decimal.Decimal `json:"amount"`
	Destination  string          `json:"destination"`
	WithdrawalID Hash            `json:"withdrawal_id"`
}

// VaultService custody vault state machine; caller is always explicit
type VaultService interface {
	Deposit(ctx context.Context, caller string, input DepositInput) (Hash, error)
	RequestWithdrawal(ctx context.Context, caller string, input WithdrawalInput) (Hash, error)
	ExecuteWithdrawal(ctx context.Context, caller string, input ExecutionInput) error

	GrantRole(ctx context.Context, caller, principal string, role Role) error
	RevokeRole(ctx context.Context, caller, principal string, role Role) error
	HasRole(ctx context.Context, principal string, role Role) (bool, error)
	Roles(ctx context.Context, principal string) ([]Role, error)

	Pause(ctx context.Context, caller string) error
	Unpause(ctx context.Context, caller string) error
	IsPaused(ctx context.Context) (bool, error)

	CustodyBalance(ctx context.Context, assetID string) (decimal.Decimal, error)
}
