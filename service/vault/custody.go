package vault

import (
	"context"
	"fmt"

	"custody/core"
	"custody/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Deposit pull amount from caller into custody
func (v *Vault) Deposit(ctx context.Context, caller string, input core.DepositInput) (core.Hash, error) {
	canonicalize(&caller, &input.AssetID, &input.Recipient)
	log := logger.FromContext(ctx).WithField("asset", input.AssetID).WithField("caller", caller)

	var depositID core.Hash
	err := v.guard(ctx, func(ctx context.Context) error {
		return v.store.RunInTx(ctx, func(s core.Session) error {
			if err := requireActive(ctx, s); err != nil {
				return err
			}

			if err := validateMovement(caller, input.AssetID, input.Recipient, input.Amount); err != nil {
				return err
			}

			asset, err := v.assets.Find(ctx, input.AssetID)
			if err != nil {
				return err
			}

			if err := v.pull(ctx, s, asset, caller, input.Amount); err != nil {
				return err
			}

			seq, err := s.NextSequence(ctx)
			if err != nil {
				return err
			}

			depositID = id.DepositID(v.cfg.ChainID, v.cfg.Address, input.AssetID, caller, input.Recipient, input.Amount, seq)
			return s.AppendNotification(ctx, &core.Notification{
				Kind:          core.NotificationDeposit,
				CorrelationID: depositID.Hex(),
				AssetID:       input.AssetID,
				Principal:     caller,
				Counterparty:  input.Recipient,
				Amount:        input.Amount,
				Sequence:      seq,
			})
		})
	})
	if err != nil {
		log.WithError(err).Errorln("vault.Deposit")
		return core.Hash{}, err
	}

	log.WithField("deposit_id", depositID).Infoln("deposit", input.Amount)
	return depositID, nil
}

// RequestWithdrawal advisory signal, moves nothing
func (v *Vault) RequestWithdrawal(ctx context.Context, caller string, input core.WithdrawalInput) (core.Hash, error) {
	canonicalize(&caller, &input.AssetID, &input.Destination)
	log := logger.FromContext(ctx).WithField("asset", input.AssetID).WithField("caller", caller)

	var withdrawalID core.Hash
	err := v.guard(ctx, func(ctx context.Context) error {
		return v.store.RunInTx(ctx, func(s core.Session) error {
			if err := requireActive(ctx, s); err != nil {
				return err
			}

			if err := validateMovement(caller, input.AssetID, input.Destination, input.Amount); err != nil {
				return err
			}

			withdrawalID = id.WithdrawalID(v.cfg.ChainID, v.cfg.Address, input.AssetID, caller, input.Destination, input.Amount, v.now().Unix())
			return s.AppendNotification(ctx, &core.Notification{
				Kind:          core.NotificationWithdrawalRequested,
				CorrelationID: withdrawalID.Hex(),
				AssetID:       input.AssetID,
				Principal:     caller,
				Counterparty:  input.Destination,
				Amount:        input.Amount,
			})
		})
	})
	if err != nil {
		log.WithError(err).Errorln("vault.RequestWithdrawal")
		return core.Hash{}, err
	}

	log.WithField("withdrawal_id", withdrawalID).Infoln("withdrawal requested", input.Amount)
	return withdrawalID, nil
}

// ExecuteWithdrawal operator only; push amount out of custody to destination.
// WithdrawalID is carried into the notification as is.
func (v *Vault) ExecuteWithdrawal(ctx context.Context, caller string, input core.ExecutionInput) error {
	canonicalize(&caller, &input.AssetID, &input.Destination)
	log := logger.FromContext(ctx).WithField("asset", input.AssetID).WithField("caller", caller)

	err := v.guard(ctx, func(ctx context.Context) error {
		return v.store.RunInTx(ctx, func(s core.Session) error {
			if err := requireActive(ctx, s); err != nil {
				return err
			}

			if err := requireRole(ctx, s, caller, core.RoleOperator); err != nil {
				return err
			}

			if err := validateMovement(caller, input.AssetID, input.Destination, input.Amount); err != nil {
				return err
			}

			if input.WithdrawalID.IsZero() {
				return fmt.Errorf("withdrawal id is required: %w", core.ErrInvalidArgument)
			}

			asset, err := v.assets.Find(ctx, input.AssetID)
			if err != nil {
				return err
			}

			if err := v.push(ctx, s, asset, input.Destination, input.Amount); err != nil {
				return err
			}

			return s.AppendNotification(ctx, &core.Notification{
				Kind:          core.NotificationWithdrawalExecuted,
				CorrelationID: input.WithdrawalID.Hex(),
				AssetID:       input.AssetID,
				Principal:     caller,
				Counterparty:  input.Destination,
				Amount:        input.Amount,
			})
		})
	})
	if err != nil {
		log.WithError(err).Errorln("vault.ExecuteWithdrawal")
		return err
	}

	log.WithField("withdrawal_id", input.WithdrawalID).Infoln("withdrawal executed", input.Amount)
	return nil
}

// CustodyBalance vault's own balance of asset
func (v *Vault) CustodyBalance(ctx context.Context, assetID string) (decimal.Decimal, error) {
	canonicalize(&assetID)
	balance := decimal.Zero
	err := v.view(ctx, func(s core.Session) error {
		asset, err := v.assets.Find(ctx, assetID)
		if err != nil {
			return err
		}

		b, err := asset.BalanceOf(ctx, s, v.cfg.Address)
		balance = b
		return err
	})

	return balance, err
}

func (v *Vault) pull(ctx context.Context, s core.Session, asset core.Asset, from string, amount decimal.Decimal) error {
	before, err := v.custodyOf(ctx, s, asset)
	if err != nil {
		return err
	}

	var ok bool
	v.foreignCall(func() {
		ok, err = asset.TransferFrom(ctx, s, v.cfg.Address, from, v.cfg.Address, amount)
	})
	if err != nil {
		return fmt.Errorf("transfer from %s: %v: %w", from, err, core.ErrTransferFailed)
	}

	if !ok {
		return fmt.Errorf("transfer from %s not acknowledged: %w", from, core.ErrTransferFailed)
	}

	after, err := v.custodyOf(ctx, s, asset)
	if err != nil {
		return err
	}

	if moved := after.Sub(before); !moved.Equal(amount) {
		return fmt.Errorf("custody moved by %s, want %s: %w", moved, amount, core.ErrTransferFailed)
	}

	return nil
}

func (v *Vault) push(ctx context.Context, s core.Session, asset core.Asset, to string, amount decimal.Decimal) error {
	before, err := v.custodyOf(ctx, s, asset)
	if err != nil {
		return err
	}

	if before.LessThan(amount) {
		return fmt.Errorf("custody %s below %s: %w", before, amount, core.ErrInsufficientFunds)
	}

	var ok bool
	v.foreignCall(func() {
		ok, err = asset.Transfer(ctx, s, v.cfg.Address, to, amount)
	})
	if err != nil {
		return fmt.Errorf("transfer to %s: %v: %w", to, err, core.ErrTransferFailed)
	}

	if !ok {
		return fmt.Errorf("transfer to %s not acknowledged: %w", to, core.ErrTransferFailed)
	}

	after, err := v.custodyOf(ctx, s, asset)
	if err != nil {
		return err
	}

	if moved := before.Sub(after); !moved.Equal(amount) {
		return fmt.Errorf("custody moved by %s, want %s: %w", moved, amount, core.ErrTransferFailed)
	}

	return nil
}

// custodyOf a failing balance query leaves the transfer unverifiable
func (v *Vault) custodyOf(ctx context.Context, s core.Session, asset core.Asset) (decimal.Decimal, error) {
	var (
		balance decimal.Decimal
		err     error
	)

	v.foreignCall(func() {
		balance, err = asset.BalanceOf(ctx, s, v.cfg.Address)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance of custody: %v: %w", err, core.ErrTransferFailed)
	}

	return balance, nil
}

func validateMovement(caller, assetID, counterparty string, amount decimal.Decimal) error {
	if !core.ValidIdentity(caller) {
		return fmt.Errorf("invalid caller %q: %w", caller, core.ErrInvalidArgument)
	}

	if !core.ValidIdentity(assetID) {
		return fmt.Errorf("invalid asset %q: %w", assetID, core.ErrInvalidArgument)
	}

	if !core.ValidIdentity(counterparty) {
		return fmt.Errorf("invalid counterparty %q: %w", counterparty, core.ErrInvalidArgument)
	}

	if !amount.IsPositive() {
		return fmt.Errorf("amount %s must be positive: %w", amount, core.ErrInvalidArgument)
	}

	return nil
}
