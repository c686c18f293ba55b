// Package auditor replays the notification outbox and compares the custody
// it implies with the vault's actual custody balance per asset.
package auditor

import (
	"context"
	"sync"
	"time"

	"custody/core"
	"custody/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

const batch = 500

var _ worker.Worker = (*Auditor)(nil)

// Drift custody that does not match the replayed notifications
type Drift struct {
	AssetID  string          `json:"asset_id"`
	Expected decimal.Decimal `json:"expected"`
	Actual   decimal.Decimal `json:"actual"`
}

// Auditor custody auditor
type Auditor struct {
	notifications core.NotificationStore
	vault         core.VaultService
	location      *time.Location
	spec          string

	mu       sync.Mutex
	cursor   int64
	expected map[string]decimal.Decimal
}

// New new auditor, spec is a cron spec such as "@every 1m"
func New(notifications core.NotificationStore, vault core.VaultService, location *time.Location, spec string) *Auditor {
	return &Auditor{
		notifications: notifications,
		vault:         vault,
		location:      location,
		spec:          spec,
		expected:      make(map[string]decimal.Decimal),
	}
}

// Run schedule Audit until ctx is done
func (w *Auditor) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "auditor")
	ctx = logger.WithContext(ctx, log)

	c := cron.New(
		cron.WithLocation(w.location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if _, err := c.AddFunc(w.spec, func() {
		_, _ = w.Audit(ctx)
	}); err != nil {
		log.WithError(err).Errorln("cron.AddFunc", w.spec)
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return ctx.Err()
}

// Audit fold new notifications into the expected custody and report every
// asset whose balance differs
func (w *Auditor) Audit(ctx context.Context) ([]Drift, error) {
	log := logger.FromContext(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	for {
		notifications, err := w.notifications.ListNotifications(ctx, w.cursor, batch)
		if err != nil {
			log.WithError(err).Errorln("notifications.List")
			return nil, err
		}

		for _, n := range notifications {
			switch n.Kind {
			case core.NotificationDeposit:
				w.expected[n.AssetID] = w.expected[n.AssetID].Add(n.Amount)
			case core.NotificationWithdrawalExecuted:
				w.expected[n.AssetID] = w.expected[n.AssetID].Sub(n.Amount)
			}

			w.cursor = n.ID
		}

		if len(notifications) < batch {
			break
		}
	}

	var drifts []Drift
	for assetID, expected := range w.expected {
		actual, err := w.vault.CustodyBalance(ctx, assetID)
		if err != nil {
			log.WithError(err).Errorln("vault.CustodyBalance", assetID)
			return nil, err
		}

		if !actual.Equal(expected) {
			log.WithField("asset", assetID).Warnf("custody drift, expected %s got %s", expected, actual)
			drifts = append(drifts, Drift{
				AssetID:  assetID,
				Expected: expected,
				Actual:   actual,
			})
		}
	}

	return drifts, nil
}
