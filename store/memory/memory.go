// Package memory is an in-process core.Transactor. Writes made inside
// RunInTx are staged on the session and only applied when fn returns nil.
package memory

import (
	"context"
	"sync"
	"time"

	"custody/core"

	"github.com/shopspring/decimal"
)

type (
	roleKey struct {
		principal string
		role      core.Role
	}

	balanceKey struct {
		asset  string
		holder string
	}

	allowanceKey struct {
		asset   string
		owner   string
		spender string
	}

	state struct {
		roles         map[roleKey]*core.RoleAssignment
		paused        bool
		initialized   bool
		sequence      uint64
		balances      map[balanceKey]decimal.Decimal
		allowances    map[allowanceKey]decimal.Decimal
		notifications []*core.Notification
	}
)

// Store in-memory store
type Store struct {
	mu          sync.Mutex
	state       *state
	checkpoints map[string]int64
	now         func() time.Time
}

// New new in-memory store
func New() *Store {
	return &Store{
		state: &state{
			roles:      make(map[roleKey]*core.RoleAssignment),
			balances:   make(map[balanceKey]decimal.Decimal),
			allowances: make(map[allowanceKey]decimal.Decimal),
		},
		checkpoints: make(map[string]int64),
		now:         time.Now,
	}
}

// RunInTx implements core.Transactor. Transactions are serialized; fn must
// not call RunInTx on the same store.
func (s *Store) RunInTx(ctx context.Context, fn func(session core.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newSession(s.state, s.now)
	if err := fn(tx); err != nil {
		return err
	}

	tx.commit()
	return nil
}

// Load implements core.CheckpointStore
func (s *Store) Load(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.checkpoints[key], nil
}

// Save implements core.CheckpointStore
func (s *Store) Save(ctx context.Context, key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkpoints[key] = value
	return nil
}

// AppendNotification implements core.NotificationStore
func (s *Store) AppendNotification(ctx context.Context, notification *core.Notification) error {
	return s.RunInTx(ctx, func(session core.Session) error {
		return session.AppendNotification(ctx, notification)
	})
}

// FindNotification implements core.NotificationStore
func (s *Store) FindNotification(ctx context.Context, id int64) (*core.Notification, error) {
	var notification *core.Notification
	err := s.RunInTx(ctx, func(session core.Session) error {
		n, err := session.FindNotification(ctx, id)
		notification = n
		return err
	})

	return notification, err
}

// ListNotifications implements core.NotificationStore
func (s *Store) ListNotifications(ctx context.Context, from int64, limit int) ([]*core.Notification, error) {
	var notifications []*core.Notification
	err := s.RunInTx(ctx, func(session core.Session) error {
		list, err := session.ListNotifications(ctx, from, limit)
		notifications = list
		return err
	})

	return notifications, err
}
