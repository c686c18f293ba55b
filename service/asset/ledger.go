package asset

import (
	"context"
	"fmt"

	"custody/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	store core.Transactor
}

// NewLedger host ledger service
func NewLedger(store core.Transactor) core.LedgerService {
	return &ledgerService{store: store}
}

func (s *ledgerService) Mint(ctx context.Context, assetID, to string, amount decimal.Decimal) error {
	assetID, to = core.CanonicalIdentity(assetID), core.CanonicalIdentity(to)
	if !core.ValidIdentity(assetID) || !core.ValidIdentity(to) || !amount.IsPositive() {
		return fmt.Errorf("mint %s %s to %s: %w", amount, assetID, to, core.ErrInvalidArgument)
	}

	err := s.store.RunInTx(ctx, func(session core.Session) error {
		return NewToken(assetID).Mint(ctx, session, to, amount)
	})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("ledger.Mint")
		return err
	}

	return nil
}

func (s *ledgerService) Approve(ctx context.Context, assetID, owner, spender string, amount decimal.Decimal) error {
	assetID = core.CanonicalIdentity(assetID)
	owner, spender = core.CanonicalIdentity(owner), core.CanonicalIdentity(spender)
	if !core.ValidIdentity(assetID) || amount.IsNegative() {
		return fmt.Errorf("approve %s %s: %w", amount, assetID, core.ErrInvalidArgument)
	}

	if !core.ValidIdentity(owner) || !core.ValidIdentity(spender) {
		return fmt.Errorf("approve %s -> %s: %w", owner, spender, core.ErrInvalidArgument)
	}

	return s.store.RunInTx(ctx, func(session core.Session) error {
		return NewToken(assetID).Approve(ctx, session, owner, spender, amount)
	})
}

func (s *ledgerService) Balance(ctx context.Context, assetID, holder string) (decimal.Decimal, error) {
	assetID, holder = core.CanonicalIdentity(assetID), core.CanonicalIdentity(holder)
	balance := decimal.Zero
	err := s.store.RunInTx(ctx, func(session core.Session) error {
		v, err := session.Balance(ctx, assetID, holder)
		balance = v
		return err
	})

	return balance, err
}

func (s *ledgerService) Allowance(ctx context.Context, assetID, owner, spender string) (decimal.Decimal, error) {
	assetID = core.CanonicalIdentity(assetID)
	owner, spender = core.CanonicalIdentity(owner), core.CanonicalIdentity(spender)
	allowance := decimal.Zero
	err := s.store.RunInTx(ctx, func(session core.Session) error {
		v, err := session.Allowance(ctx, assetID, owner, spender)
		allowance = v
		return err
	})

	return allowance, err
}
