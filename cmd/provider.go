package cmd

import (
	"context"
	"time"

	"custody/core"
	"custody/handler/hc"
	"custody/service/asset"
	"custody/service/notifier"
	sessionservice "custody/service/session"
	"custody/service/vault"
	"custody/store/checkpoint"
	"custody/store/memory"
	"custody/store/notification"
	"custody/store/session"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

// backend persistence a command runs against
type backend struct {
	transactor    core.Transactor
	notifications core.NotificationStore
	checkpoints   core.CheckpointStore
	probe         hc.Probe
	close         func()
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideConfig() *core.Config {
	return &cfg
}

func provideLocation() *time.Location {
	l, err := time.LoadLocation(cfg.App.Location)
	if err != nil {
		panic(err)
	}

	return l
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideTransactor(db *db.DB) core.Transactor {
	return session.New(db)
}

func provideBackend(inMemory bool) backend {
	if inMemory {
		store := memory.New()
		return backend{
			transactor:    store,
			notifications: store,
			checkpoints:   store,
			close:         func() {},
		}
	}

	database := provideDatabase()
	return backend{
		transactor:    provideTransactor(database),
		notifications: notification.Cache(notification.New(database), 4096),
		checkpoints:   checkpoint.New(providePropertyStore(database)),
		probe: func(ctx context.Context) error {
			return database.View().DB().PingContext(ctx)
		},
		close: func() {
			_ = database.Close()
		},
	}
}

// ------------------service------------------------------------

func provideAssetRegistry() *asset.Registry {
	return asset.NewRegistry()
}

func provideVault(store core.Transactor, assets core.AssetRegistry) *vault.Vault {
	return vault.New(vault.Config{
		ChainID: cfg.Vault.ChainID,
		Address: cfg.Vault.Address,
	}, store, assets)
}

func provideLedger(store core.Transactor) core.LedgerService {
	return asset.NewLedger(store)
}

func provideSessionService() core.SessionService {
	return sessionservice.New(cfg.Auth.SigningKey, cfg.Auth.Issuer, 4096)
}

func providePublisher() core.NotificationPublisher {
	publishers := []core.NotificationPublisher{notifier.Log()}

	if cfg.Redis.Addr != "" {
		publishers = append(publishers, notifier.Redis(provideRedis(), cfg.Redis.Stream))
	}

	if cfg.Webhook.URL != "" {
		publishers = append(publishers, notifier.Webhook(cfg.Webhook.URL, cfg.Webhook.Timeout))
	}

	return notifier.Multi(publishers...)
}
