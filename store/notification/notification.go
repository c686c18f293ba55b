package notification

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type notificationStore struct {
	db   *db.DB
	read func() *gorm.DB
}

// New new notification store, reads go to the read pool
func New(db *db.DB) core.NotificationStore {
	return &notificationStore{db: db, read: db.View}
}

// Bind notification store of a transaction, reads see its own writes
func Bind(tx *db.DB) core.NotificationStore {
	return &notificationStore{db: tx, read: tx.Update}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Notification{})

		if err := tx.AutoMigrate(core.Notification{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_notifications_kind", "kind").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_notifications_correlation", "correlation_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_notifications_asset", "asset_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_notifications_principal", "principal").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_notifications_counterparty", "counterparty").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *notificationStore) AppendNotification(ctx context.Context, notification *core.Notification) error {
	return s.db.Update().Create(notification).Error
}

func (s *notificationStore) FindNotification(ctx context.Context, id int64) (*core.Notification, error) {
	var notification core.Notification
	err := s.read().Where("id = ?", id).First(&notification).Error
	if store.IsErrNotFound(err) {
		return nil, core.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &notification, nil
}

func (s *notificationStore) ListNotifications(ctx context.Context, from int64, limit int) ([]*core.Notification, error) {
	query := s.read().Where("id > ?", from).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []*core.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}
