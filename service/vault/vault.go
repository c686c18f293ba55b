package vault

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"custody/core"

	"github.com/fox-one/pkg/logger"
)

var _ core.VaultService = (*Vault)(nil)

// Config vault identity
type Config struct {
	ChainID string
	Address string
}

// Option vault option
type Option func(v *Vault)

// WithClock replace the wall clock used for withdrawal ids
func WithClock(now func() time.Time) Option {
	return func(v *Vault) {
		v.now = now
	}
}

// Vault custody vault.
//
// Every mutating operation runs under mu and inside one store transaction:
// pause check, role check, transfer and notification commit or roll back
// together.
type Vault struct {
	cfg    Config
	store  core.Transactor
	assets core.AssetRegistry
	now    func() time.Time

	mu      sync.Mutex
	foreign atomic.Bool
}

// New new vault
func New(cfg Config, store core.Transactor, assets core.AssetRegistry, opts ...Option) *Vault {
	cfg.Address = core.CanonicalIdentity(cfg.Address)

	v := &Vault{
		cfg:    cfg,
		store:  store,
		assets: assets,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Address identity custody is held under
func (v *Vault) Address() string {
	return v.cfg.Address
}

// Init grant Admin to admin on a fresh store; a no-op once initialized
func (v *Vault) Init(ctx context.Context, admin string) error {
	if v.cfg.ChainID == "" || !core.ValidIdentity(v.cfg.Address) {
		return fmt.Errorf("vault chain id and address are required: %w", core.ErrInvalidArgument)
	}

	admin = core.CanonicalIdentity(admin)
	if !core.ValidIdentity(admin) {
		return fmt.Errorf("initial admin %q: %w", admin, core.ErrInvalidArgument)
	}

	log := logger.FromContext(ctx).WithField("admin", admin)

	var granted bool
	err := v.guard(ctx, func(ctx context.Context) error {
		return v.store.RunInTx(ctx, func(s core.Session) error {
			initialized, err := s.Initialized(ctx)
			if err != nil || initialized {
				return err
			}

			if _, err := s.AddRole(ctx, &core.RoleAssignment{
				Principal: admin,
				Role:      core.RoleAdmin,
				GrantedBy: admin,
			}); err != nil {
				return err
			}

			if err := s.SetInitialized(ctx); err != nil {
				return err
			}

			granted = true
			return s.AppendNotification(ctx, &core.Notification{
				Kind:         core.NotificationRoleGranted,
				Principal:    admin,
				Counterparty: admin,
				Role:         core.RoleAdmin,
			})
		})
	})
	if err != nil {
		log.WithError(err).Errorln("vault.Init")
		return err
	}

	if granted {
		log.Infoln("vault initialized")
	} else {
		log.Debugln("vault already initialized")
	}

	return nil
}

// canonicalize rewrite every id in place to its canonical form
func canonicalize(ids ...*string) {
	for _, id := range ids {
		*id = core.CanonicalIdentity(*id)
	}
}

func requireActive(ctx context.Context, s core.Session) error {
	paused, err := s.Paused(ctx)
	if err != nil {
		return err
	}

	if paused {
		return core.ErrPaused
	}

	return nil
}

func requireRole(ctx context.Context, s core.Session, principal string, role core.Role) error {
	ok, err := s.HasRole(ctx, principal, role)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%s is not %s: %w", principal, role, core.ErrUnauthorized)
	}

	return nil
}
