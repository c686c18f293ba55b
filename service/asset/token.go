package asset

import (
	"context"
	"errors"

	"custody/core"

	"github.com/shopspring/decimal"
)

var (
	errZeroAddress           = errors.New("asset: zero address")
	errNegativeAmount        = errors.New("asset: negative amount")
	errInsufficientBalance   = errors.New("asset: transfer amount exceeds balance")
	errInsufficientAllowance = errors.New("asset: insufficient allowance")
)

// Token standard fungible asset: balances and allowances in the host ledger
type Token struct {
	id string
}

// NewToken new standard token
func NewToken(assetID string) *Token {
	return &Token{id: assetID}
}

// ID asset id
func (t *Token) ID() string {
	return t.id
}

// BalanceOf balance of holder
func (t *Token) BalanceOf(ctx context.Context, book core.AssetStore, holder string) (decimal.Decimal, error) {
	return book.Balance(ctx, t.id, holder)
}

// Transfer move amount from -> to
func (t *Token) Transfer(ctx context.Context, book core.AssetStore, from, to string, amount decimal.Decimal) (bool, error) {
	if err := t.move(ctx, book, from, to, amount); err != nil {
		return false, err
	}

	return true, nil
}

// TransferFrom spend spender's allowance on from
func (t *Token) TransferFrom(ctx context.Context, book core.AssetStore, spender, from, to string, amount decimal.Decimal) (bool, error) {
	allowance, err := book.Allowance(ctx, t.id, from, spender)
	if err != nil {
		return false, err
	}

	if allowance.LessThan(amount) {
		return false, errInsufficientAllowance
	}

	if err := t.move(ctx, book, from, to, amount); err != nil {
		return false, err
	}

	if err := book.SetAllowance(ctx, t.id, from, spender, allowance.Sub(amount)); err != nil {
		return false, err
	}

	return true, nil
}

// Approve set allowance of spender on owner
func (t *Token) Approve(ctx context.Context, book core.AssetStore, owner, spender string, amount decimal.Decimal) error {
	if !core.ValidIdentity(owner) || !core.ValidIdentity(spender) {
		return errZeroAddress
	}

	if amount.IsNegative() {
		return errNegativeAmount
	}

	return book.SetAllowance(ctx, t.id, owner, spender, amount)
}

// Mint credit amount to holder
func (t *Token) Mint(ctx context.Context, book core.AssetStore, to string, amount decimal.Decimal) error {
	if !core.ValidIdentity(to) {
		return errZeroAddress
	}

	if amount.IsNegative() {
		return errNegativeAmount
	}

	balance, err := book.Balance(ctx, t.id, to)
	if err != nil {
		return err
	}

	return book.SetBalance(ctx, t.id, to, balance.Add(amount))
}

func (t *Token) move(ctx context.Context, book core.AssetStore, from, to string, amount decimal.Decimal) error {
	if !core.ValidIdentity(from) || !core.ValidIdentity(to) {
		return errZeroAddress
	}

	if amount.IsNegative() {
		return errNegativeAmount
	}

	balance, err := book.Balance(ctx, t.id, from)
	if err != nil {
		return err
	}

	if balance.LessThan(amount) {
		return errInsufficientBalance
	}

	if from == to {
		return nil
	}

	if err := book.SetBalance(ctx, t.id, from, balance.Sub(amount)); err != nil {
		return err
	}

	received, err := book.Balance(ctx, t.id, to)
	if err != nil {
		return err
	}

	return book.SetBalance(ctx, t.id, to, received.Add(amount))
}
