package vault

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"custody/core"
	"custody/service/asset"
	"custody/store/memory"

	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *memory.Store
	assets *asset.Registry
	ledger core.LedgerService
	vault  *Vault

	admin    string
	operator string
	user     string
	dest     string
	asset    string
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		store:    memory.New(),
		assets:   asset.NewRegistry(),
		admin:    uuid.New(),
		operator: uuid.New(),
		user:     uuid.New(),
		dest:     uuid.New(),
		asset:    uuid.New(),
	}

	f.ledger = asset.NewLedger(f.store)
	f.vault = New(Config{ChainID: "custody-test", Address: uuid.New()}, f.store, f.assets, opts...)

	ctx := context.Background()
	require.NoError(t, f.vault.Init(ctx, f.admin))
	require.NoError(t, f.vault.GrantRole(ctx, f.admin, f.operator, core.RoleOperator))
	return f
}

// fund mint amount to holder and approve the vault to pull it
func (f *fixture) fund(t *testing.T, holder string, amount int64) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, f.ledger.Mint(ctx, f.asset, holder, decimal.NewFromInt(amount)))

	allowance, err := f.ledger.Allowance(ctx, f.asset, holder, f.vault.Address())
	require.NoError(t, err)
	require.NoError(t, f.ledger.Approve(ctx, f.asset, holder, f.vault.Address(), allowance.Add(decimal.NewFromInt(amount))))
}

func (f *fixture) custody(t *testing.T) decimal.Decimal {
	t.Helper()

	balance, err := f.vault.CustodyBalance(context.Background(), f.asset)
	require.NoError(t, err)
	return balance
}

func (f *fixture) notifications(t *testing.T) []*core.Notification {
	t.Helper()

	list, err := f.store.ListNotifications(context.Background(), 0, 0)
	require.NoError(t, err)
	return list
}

func (f *fixture) execution(amount int64) core.ExecutionInput {
	return core.ExecutionInput{
		AssetID:      f.asset,
		Amount:       decimal.NewFromInt(amount),
		Destination:  f.dest,
		WithdrawalID: core.Hash{0x01},
	}
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	depositID, err := f.vault.Deposit(ctx, f.user, core.DepositInput{
		AssetID:   f.asset,
		Amount:    decimal.NewFromInt(10),
		Recipient: f.user,
	})
	require.NoError(t, err)
	assert.False(t, depositID.IsZero())
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(10)))

	list := f.notifications(t)
	last := list[len(list)-1]
	assert.Equal(t, core.NotificationDeposit, last.Kind)
	assert.Equal(t, depositID.Hex(), last.CorrelationID)
	assert.Equal(t, f.user, last.Principal)
	assert.Equal(t, f.user, last.Counterparty)
	assert.EqualValues(t, 1, last.Sequence)

	before := len(list)
	err = f.vault.ExecuteWithdrawal(ctx, f.user, f.execution(5))
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.notifications(t), before)

	require.NoError(t, f.vault.ExecuteWithdrawal(ctx, f.operator, f.execution(5)))
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(5)))

	received, err := f.ledger.Balance(ctx, f.asset, f.dest)
	require.NoError(t, err)
	assert.True(t, received.Equal(decimal.NewFromInt(5)))

	list = f.notifications(t)
	require.Len(t, list, before+1)
	last = list[len(list)-1]
	assert.Equal(t, core.NotificationWithdrawalExecuted, last.Kind)
	assert.Equal(t, core.Hash{0x01}.Hex(), last.CorrelationID)
	assert.Equal(t, f.operator, last.Principal)
	assert.Equal(t, f.dest, last.Counterparty)
}

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("zero admin", func(t *testing.T) {
		v := New(Config{ChainID: "custody-test", Address: uuid.New()}, memory.New(), asset.NewRegistry())
		assert.ErrorIs(t, v.Init(ctx, ""), core.ErrInvalidArgument)
		assert.ErrorIs(t, v.Init(ctx, "00000000-0000-0000-0000-000000000000"), core.ErrInvalidArgument)
	})

	t.Run("second init is a no-op", func(t *testing.T) {
		f := newFixture(t)
		other := uuid.New()

		require.NoError(t, f.vault.Init(ctx, other))
		ok, err := f.vault.HasRole(ctx, other, core.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = f.vault.HasRole(ctx, f.admin, core.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRoleGating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(10), Recipient: f.user})
	require.NoError(t, err)

	before := len(f.notifications(t))
	for _, caller := range []string{f.user, f.admin, f.dest} {
		err := f.vault.ExecuteWithdrawal(ctx, caller, f.execution(1))
		assert.ErrorIs(t, err, core.ErrUnauthorized, caller)
	}

	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.notifications(t), before)

	assert.ErrorIs(t, f.vault.GrantRole(ctx, f.operator, f.user, core.RoleOperator), core.ErrUnauthorized)
	assert.ErrorIs(t, f.vault.Pause(ctx, f.operator), core.ErrUnauthorized)
}

func TestIdempotentRoles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	principal := uuid.New()

	require.NoError(t, f.vault.GrantRole(ctx, f.admin, principal, core.RoleOperator))
	once, err := f.vault.Roles(ctx, principal)
	require.NoError(t, err)
	count := len(f.notifications(t))

	require.NoError(t, f.vault.GrantRole(ctx, f.admin, principal, core.RoleOperator))
	twice, err := f.vault.Roles(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Len(t, f.notifications(t), count)

	unheld := uuid.New()
	require.NoError(t, f.vault.RevokeRole(ctx, f.admin, unheld, core.RoleOperator))
	assert.Len(t, f.notifications(t), count)

	require.NoError(t, f.vault.RevokeRole(ctx, f.admin, principal, core.RoleOperator))
	roles, err := f.vault.Roles(ctx, principal)
	require.NoError(t, err)
	assert.Empty(t, roles)

	list := f.notifications(t)
	assert.Equal(t, core.NotificationRoleRevoked, list[len(list)-1].Kind)
}

func TestRoleArguments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.vault.GrantRole(ctx, f.admin, "", core.RoleOperator), core.ErrInvalidArgument)
	assert.ErrorIs(t, f.vault.GrantRole(ctx, f.admin, uuid.New(), core.Role("root")), core.ErrInvalidArgument)

	ok, err := f.vault.HasRole(ctx, f.admin, core.Role("root"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminIsNotOperator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ok, err := f.vault.HasRole(ctx, f.admin, core.RoleOperator)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastAdminProtected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.vault.RevokeRole(ctx, f.admin, f.admin, core.RoleAdmin)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	second := uuid.New()
	require.NoError(t, f.vault.GrantRole(ctx, f.admin, second, core.RoleAdmin))
	require.NoError(t, f.vault.RevokeRole(ctx, second, f.admin, core.RoleAdmin))

	ok, err := f.vault.HasRole(ctx, f.admin, core.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, f.vault.RevokeRole(ctx, second, second, core.RoleAdmin), core.ErrInvalidArgument)
}

func TestPauseGating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	deposit := core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(4), Recipient: f.user}
	request := core.WithdrawalInput{AssetID: f.asset, Amount: decimal.NewFromInt(1), Destination: f.dest}

	_, err := f.vault.Deposit(ctx, f.user, deposit)
	require.NoError(t, err)

	require.NoError(t, f.vault.Pause(ctx, f.admin))
	paused, err := f.vault.IsPaused(ctx)
	require.NoError(t, err)
	assert.True(t, paused)

	count := len(f.notifications(t))
	require.NoError(t, f.vault.Pause(ctx, f.admin))
	assert.Len(t, f.notifications(t), count)

	_, err = f.vault.Deposit(ctx, f.user, deposit)
	assert.ErrorIs(t, err, core.ErrPaused)
	_, err = f.vault.RequestWithdrawal(ctx, f.user, request)
	assert.ErrorIs(t, err, core.ErrPaused)
	assert.ErrorIs(t, f.vault.ExecuteWithdrawal(ctx, f.operator, f.execution(1)), core.ErrPaused)
	assert.ErrorIs(t, f.vault.ExecuteWithdrawal(ctx, f.user, f.execution(1)), core.ErrPaused)

	assert.Len(t, f.notifications(t), count)
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(4)))

	assert.ErrorIs(t, f.vault.Unpause(ctx, f.user), core.ErrUnauthorized)
	require.NoError(t, f.vault.Unpause(ctx, f.admin))

	_, err = f.vault.Deposit(ctx, f.user, deposit)
	require.NoError(t, err)
	_, err = f.vault.RequestWithdrawal(ctx, f.user, request)
	require.NoError(t, err)
	require.NoError(t, f.vault.ExecuteWithdrawal(ctx, f.operator, f.execution(1)))
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(7)))
}

func TestInvalidArguments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	cases := map[string]core.DepositInput{
		"zero amount":       {AssetID: f.asset, Amount: decimal.Zero, Recipient: f.user},
		"negative amount":   {AssetID: f.asset, Amount: decimal.NewFromInt(-1), Recipient: f.user},
		"missing asset":     {Amount: decimal.NewFromInt(1), Recipient: f.user},
		"missing recipient": {AssetID: f.asset, Amount: decimal.NewFromInt(1)},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.vault.Deposit(ctx, f.user, input)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}

	_, err := f.vault.RequestWithdrawal(ctx, f.user, core.WithdrawalInput{AssetID: f.asset, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	input := f.execution(1)
	input.WithdrawalID = core.Hash{}
	assert.ErrorIs(t, f.vault.ExecuteWithdrawal(ctx, f.operator, input), core.ErrInvalidArgument)
}

func TestDepositWithoutAllowance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.ledger.Mint(ctx, f.asset, f.user, decimal.NewFromInt(10)))

	count := len(f.notifications(t))
	_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(10), Recipient: f.user})
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.True(t, f.custody(t).IsZero())
	assert.Len(t, f.notifications(t), count)
}

func TestExecuteInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 3)

	_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(3), Recipient: f.user})
	require.NoError(t, err)

	err = f.vault.ExecuteWithdrawal(ctx, f.operator, f.execution(4))
	assert.ErrorIs(t, err, core.ErrInsufficientFunds)
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.Equal(t, core.ErrInsufficientFunds, core.CodeOf(err))
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(3)))
}

func TestRequestWithdrawal(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	f := newFixture(t, WithClock(func() time.Time { return now }))

	input := core.WithdrawalInput{AssetID: f.asset, Amount: decimal.NewFromInt(5), Destination: f.dest}

	a, err := f.vault.RequestWithdrawal(ctx, f.user, input)
	require.NoError(t, err)
	b, err := f.vault.RequestWithdrawal(ctx, f.user, input)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	now = now.Add(time.Second)
	c, err := f.vault.RequestWithdrawal(ctx, f.user, input)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	assert.True(t, f.custody(t).IsZero())

	list := f.notifications(t)
	last := list[len(list)-1]
	assert.Equal(t, core.NotificationWithdrawalRequested, last.Kind)
	assert.Equal(t, c.Hex(), last.CorrelationID)
	assert.Equal(t, f.dest, last.Counterparty)
}

func TestDepositIDsUnique(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	f := newFixture(t, WithClock(func() time.Time { return now }))

	const n = 10000
	f.fund(t, f.user, n*3)

	recipients := []string{f.user, f.dest, f.admin}
	seen := make(map[core.Hash]struct{}, n)
	for i := 0; i < n; i++ {
		id, err := f.vault.Deposit(ctx, f.user, core.DepositInput{
			AssetID:   f.asset,
			Amount:    decimal.NewFromInt(int64(i%3 + 1)),
			Recipient: recipients[i%len(recipients)],
		})
		require.NoError(t, err)
		seen[id] = struct{}{}
	}

	assert.Len(t, seen, n)
}

func TestCustodyConservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 1000)

	rnd := rand.New(rand.NewSource(7))
	expected := decimal.Zero
	for i := 0; i < 200; i++ {
		amount := decimal.NewFromInt(rnd.Int63n(20) + 1)

		if rnd.Intn(2) == 0 {
			_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: amount, Recipient: f.user})
			if err == nil {
				expected = expected.Add(amount)
			}
			continue
		}

		input := f.execution(1)
		input.Amount = amount
		if err := f.vault.ExecuteWithdrawal(ctx, f.operator, input); err == nil {
			expected = expected.Sub(amount)
		} else {
			assert.ErrorIs(t, err, core.ErrInsufficientFunds)
		}
	}

	assert.True(t, f.custody(t).Equal(expected), "custody %s, expected %s", f.custody(t), expected)
}

func TestConcurrentExecutionsCannotOverdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(10), Recipient: f.user})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				err := f.vault.ExecuteWithdrawal(ctx, f.operator, f.execution(1))
				if errors.Is(err, core.ErrReentrancyRejected) {
					// refused while another execution was inside asset code
					assert.True(t, core.CodeOf(err).Retryable())
					time.Sleep(time.Millisecond)
					continue
				}

				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				} else {
					assert.ErrorIs(t, err, core.ErrInsufficientFunds)
				}

				return
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 10, succeeded)
	assert.True(t, f.custody(t).IsZero())
}

// silentAsset never acknowledges a pull
type silentAsset struct {
	*asset.Token
}

func (a *silentAsset) TransferFrom(ctx context.Context, book core.AssetStore, spender, from, to string, amount decimal.Decimal) (bool, error) {
	return false, nil
}

// halfAsset moves the funds but reports failure
type halfAsset struct {
	*asset.Token
}

func (a *halfAsset) TransferFrom(ctx context.Context, book core.AssetStore, spender, from, to string, amount decimal.Decimal) (bool, error) {
	_, _ = a.Token.TransferFrom(ctx, book, spender, from, to, amount)
	return false, nil
}

// liarAsset acknowledges without moving anything
type liarAsset struct {
	*asset.Token
}

func (a *liarAsset) TransferFrom(ctx context.Context, book core.AssetStore, spender, from, to string, amount decimal.Decimal) (bool, error) {
	return true, nil
}

func (a *liarAsset) Transfer(ctx context.Context, book core.AssetStore, from, to string, amount decimal.Decimal) (bool, error) {
	return true, nil
}

// brokenAsset can not report balances
type brokenAsset struct {
	*asset.Token
}

func (a *brokenAsset) BalanceOf(ctx context.Context, book core.AssetStore, holder string) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("balance unavailable")
}

func TestNonConformingAssets(t *testing.T) {
	ctx := context.Background()

	cases := map[string]func(id string) core.Asset{
		"silent": func(id string) core.Asset { return &silentAsset{asset.NewToken(id)} },
		"half":   func(id string) core.Asset { return &halfAsset{asset.NewToken(id)} },
		"liar":   func(id string) core.Asset { return &liarAsset{asset.NewToken(id)} },
		"broken": func(id string) core.Asset { return &brokenAsset{asset.NewToken(id)} },
	}

	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.fund(t, f.user, 10)
			f.assets.Register(build(f.asset))

			count := len(f.notifications(t))
			_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(10), Recipient: f.user})
			assert.ErrorIs(t, err, core.ErrTransferFailed)
			assert.Len(t, f.notifications(t), count)

			custody, err := f.ledger.Balance(ctx, f.asset, f.vault.Address())
			require.NoError(t, err)
			assert.True(t, custody.IsZero())

			held, err := f.ledger.Balance(ctx, f.asset, f.user)
			require.NoError(t, err)
			assert.True(t, held.Equal(decimal.NewFromInt(10)))
		})
	}
}

func TestLyingWithdrawalRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(10), Recipient: f.user})
	require.NoError(t, err)

	f.assets.Register(&liarAsset{asset.NewToken(f.asset)})
	count := len(f.notifications(t))

	err = f.vault.ExecuteWithdrawal(ctx, f.operator, f.execution(5))
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.Len(t, f.notifications(t), count)
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(10)))
}

// reentrantAsset calls back into the vault from inside a transfer
type reentrantAsset struct {
	*asset.Token
	vault    *Vault
	operator string
	errs     []error
}

func (a *reentrantAsset) TransferFrom(ctx context.Context, book core.AssetStore, spender, from, to string, amount decimal.Decimal) (bool, error) {
	_, err := a.vault.Deposit(ctx, from, core.DepositInput{AssetID: a.ID(), Amount: amount, Recipient: from})
	a.errs = append(a.errs, err)

	a.errs = append(a.errs, a.vault.ExecuteWithdrawal(ctx, a.operator, core.ExecutionInput{
		AssetID:      a.ID(),
		Amount:       amount,
		Destination:  from,
		WithdrawalID: core.Hash{0x02},
	}))

	a.errs = append(a.errs, a.vault.Pause(ctx, a.operator))

	_, err = a.vault.IsPaused(ctx)
	a.errs = append(a.errs, err)

	return a.Token.TransferFrom(ctx, book, spender, from, to, amount)
}

func TestReentrancyRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	reentrant := &reentrantAsset{Token: asset.NewToken(f.asset), vault: f.vault, operator: f.operator}
	f.assets.Register(reentrant)

	_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(10), Recipient: f.user})
	require.NoError(t, err)

	require.Len(t, reentrant.errs, 4)
	for _, err := range reentrant.errs {
		assert.ErrorIs(t, err, core.ErrReentrancyRejected)
	}

	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(10)))

	paused, err := f.vault.IsPaused(ctx)
	require.NoError(t, err)
	assert.False(t, paused)
}

// detachedAsset calls back into the vault with a context of its own
type detachedAsset struct {
	*asset.Token
	vault *Vault
	admin string
	errs  []error
}

func (a *detachedAsset) TransferFrom(ctx context.Context, book core.AssetStore, spender, from, to string, amount decimal.Decimal) (bool, error) {
	detached := context.Background()

	_, err := a.vault.RequestWithdrawal(detached, from, core.WithdrawalInput{AssetID: a.ID(), Amount: amount, Destination: from})
	a.errs = append(a.errs, err)

	_, err = a.vault.Deposit(detached, from, core.DepositInput{AssetID: a.ID(), Amount: amount, Recipient: from})
	a.errs = append(a.errs, err)

	a.errs = append(a.errs, a.vault.Pause(detached, a.admin))

	_, err = a.vault.CustodyBalance(detached, a.ID())
	a.errs = append(a.errs, err)

	return a.Token.TransferFrom(ctx, book, spender, from, to, amount)
}

func TestReentrancyWithDetachedContextRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	detached := &detachedAsset{Token: asset.NewToken(f.asset), vault: f.vault, admin: f.admin}
	f.assets.Register(detached)

	done := make(chan error, 1)
	go func() {
		_, err := f.vault.Deposit(ctx, f.user, core.DepositInput{AssetID: f.asset, Amount: decimal.NewFromInt(10), Recipient: f.user})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("deposit blocked on its own reentrant call")
	}

	require.Len(t, detached.errs, 4)
	for _, err := range detached.errs {
		assert.ErrorIs(t, err, core.ErrReentrancyRejected)
	}

	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(10)))

	paused, err := f.vault.IsPaused(ctx)
	require.NoError(t, err)
	assert.False(t, paused)
}

func TestIdentityFormsShareOneRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, f.user, 10)

	principal := uuid.New()
	upper := strings.ToUpper(principal)
	braced := "{" + principal + "}"

	require.NoError(t, f.vault.GrantRole(ctx, strings.ToUpper(f.admin), upper, core.RoleOperator))

	ok, err := f.vault.HasRole(ctx, principal, core.RoleOperator)
	require.NoError(t, err)
	assert.True(t, ok)

	roles, err := f.vault.Roles(ctx, "urn:uuid:"+principal)
	require.NoError(t, err)
	assert.Equal(t, []core.Role{core.RoleOperator}, roles)

	// granting the same principal in another form changes nothing
	before := len(f.notifications(t))
	require.NoError(t, f.vault.GrantRole(ctx, f.admin, braced, core.RoleOperator))
	assert.Len(t, f.notifications(t), before)

	_, err = f.vault.Deposit(ctx, strings.ToUpper(f.user), core.DepositInput{
		AssetID:   strings.ToUpper(f.asset),
		Amount:    decimal.NewFromInt(10),
		Recipient: f.user,
	})
	require.NoError(t, err)
	assert.True(t, f.custody(t).Equal(decimal.NewFromInt(10)))

	last := f.notifications(t)[len(f.notifications(t))-1]
	assert.Equal(t, f.user, last.Principal)
	assert.Equal(t, f.asset, last.AssetID)

	require.NoError(t, f.vault.ExecuteWithdrawal(ctx, braced, core.ExecutionInput{
		AssetID:      f.asset,
		Amount:       decimal.NewFromInt(4),
		Destination:  strings.ToUpper(f.dest),
		WithdrawalID: core.Hash{0x03},
	}))

	balance, err := f.ledger.Balance(ctx, f.asset, f.dest)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(4)))
}
