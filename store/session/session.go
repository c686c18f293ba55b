// Package session composes the gorm stores into one transactional
// core.Transactor; every store used by fn shares the same db transaction.
package session

import (
	"context"

	"custody/core"
	"custody/store/balance"
	"custody/store/notification"
	"custody/store/role"
	"custody/store/state"

	"github.com/fox-one/pkg/store/db"
)

type session struct {
	core.RoleStore
	core.StateStore
	core.AssetStore
	core.NotificationStore
}

type sessionStore struct {
	db *db.DB
}

// New new transactor over db
func New(db *db.DB) core.Transactor {
	return &sessionStore{db: db}
}

func (s *sessionStore) RunInTx(ctx context.Context, fn func(s core.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		return fn(&session{
			RoleStore:         role.New(tx),
			StateStore:        state.New(tx),
			AssetStore:        balance.New(tx),
			NotificationStore: notification.Bind(tx),
		})
	})
}
