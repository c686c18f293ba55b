package notification

import (
	"context"
	"strconv"

	"custody/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache notifications never change once written, Find results are kept in an LRU
func Cache(store core.NotificationStore, size int) core.NotificationStore {
	return &cacheNotificationStore{
		NotificationStore: store,
		cache:             gcache.New(size).LRU().Build(),
		sf:                &singleflight.Group{},
	}
}

type cacheNotificationStore struct {
	core.NotificationStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheNotificationStore) AppendNotification(ctx context.Context, notification *core.Notification) error {
	if err := s.NotificationStore.AppendNotification(ctx, notification); err != nil {
		return err
	}

	s.cacheNotification(notification)
	return nil
}

func (s *cacheNotificationStore) FindNotification(ctx context.Context, id int64) (*core.Notification, error) {
	key := strconv.FormatInt(id, 10)
	if v, err := s.cache.Get(key); err == nil {
		if notification, ok := v.(*core.Notification); ok {
			return clone(notification), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.NotificationStore.FindNotification(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	notification := v.(*core.Notification)
	s.cacheNotification(notification)
	return clone(notification), nil
}

func (s *cacheNotificationStore) ListNotifications(ctx context.Context, from int64, limit int) ([]*core.Notification, error) {
	notifications, err := s.NotificationStore.ListNotifications(ctx, from, limit)
	if err != nil {
		return nil, err
	}

	for _, notification := range notifications {
		s.cacheNotification(notification)
	}

	return notifications, nil
}

// cacheNotification keep a private copy, callers own what they passed in
func (s *cacheNotificationStore) cacheNotification(notification *core.Notification) {
	if notification.ID > 0 {
		_ = s.cache.Set(strconv.FormatInt(notification.ID, 10), clone(notification))
	}
}

func clone(notification *core.Notification) *core.Notification {
	cp := *notification
	return &cp
}
