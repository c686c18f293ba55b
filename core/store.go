package core

import (
	"context"
	"time"
)

// StateStore vault wide switches and counters
type StateStore interface {
	Paused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, paused bool) error
	// NextSequence advance and return the deposit counter
	NextSequence(ctx context.Context) (uint64, error)
	Initialized(ctx context.Context) (bool, error)
	SetInitialized(ctx context.Context) error
}

// Session stores visible inside one transaction
type Session interface {
	RoleStore
	StateStore
	AssetStore
	NotificationStore
}

// Transactor runs fn as one all-or-nothing unit; any error rolls back every
// write made through the session.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(s Session) error) error
}

// VaultState single row holding the vault wide switches
type VaultState struct {
	ID          int64     `sql:"PRIMARY_KEY" json:"id"`
	UpdatedAt   time.Time `json:"updated_at"`
	Paused      bool      `json:"paused"`
	Initialized bool      `json:"initialized"`
	Sequence    uint64    `json:"sequence"`
	Version     int64     `json:"version"`
}
