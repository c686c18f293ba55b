package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// NotificationKind kind of state transition
type NotificationKind string

const (
	// NotificationDeposit funds pulled into custody
	NotificationDeposit NotificationKind = "deposit"
	// NotificationWithdrawalRequested advisory withdrawal signal
	NotificationWithdrawalRequested NotificationKind = "withdrawal_requested"
	// NotificationWithdrawalExecuted funds pushed out of custody
	NotificationWithdrawalExecuted NotificationKind = "withdrawal_executed"
	// NotificationRoleGranted role added
	NotificationRoleGranted NotificationKind = "role_granted"
	// NotificationRoleRevoked role removed
	NotificationRoleRevoked NotificationKind = "role_revoked"
	// NotificationPaused pause gate closed
	NotificationPaused NotificationKind = "paused"
	// NotificationUnpaused pause gate opened
	NotificationUnpaused NotificationKind = "unpaused"
)

// Notification append-only record of a completed transition.
//
// ID is the host ordering; listeners replay in ID order and dedupe by ID.
type Notification struct {
	ID            int64            `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	Kind          NotificationKind `sql:"size:32" json:"kind"`
	CorrelationID string           `sql:"size:66" json:"correlation_id,omitempty"`
	AssetID       string           `sql:"size:36" json:"asset_id,omitempty"`
	Principal     string           `sql:"size:36" json:"principal,omitempty"`
	Counterparty  string           `sql:"size:36" json:"counterparty,omitempty"`
	Role          Role             `sql:"size:24" json:"role,omitempty"`
	Amount        decimal.Decimal  `sql:"type:decimal(64,18)" json:"amount"`
	Sequence      uint64           `json:"sequence,omitempty"`
}

// NotificationStore notification outbox interface
type NotificationStore interface {
	AppendNotification(ctx context.Context, notification *Notification) error
	FindNotification(ctx context.Context, id int64) (*Notification, error)
	// ListNotifications notifications with ID > from in ID order
	ListNotifications(ctx context.Context, from int64, limit int) ([]*Notification, error)
}

// NotificationPublisher delivers notifications to off-core listeners
type NotificationPublisher interface {
	Publish(ctx context.Context, notification *Notification) error
}

// CheckpointStore persists worker cursors
type CheckpointStore interface {
	Load(ctx context.Context, key string) (int64, error)
	Save(ctx context.Context, key string, value int64) error
}
