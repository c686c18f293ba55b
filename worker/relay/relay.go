package relay

import (
	"context"
	"errors"
	"time"

	"custody/core"
	"custody/worker"

	"github.com/fox-one/pkg/logger"
)

const checkpointKey = "relay"

var errNoMore = errors.New("no more notifications")

var _ worker.Worker = (*Relay)(nil)

// Config relay config
type Config struct {
	Batch    int
	Interval time.Duration
	// Settle how long a missing id may still be committed by a slower writer;
	// the checkpoint does not pass a gap younger than this
	Settle time.Duration
}

// Relay deliver outbox notifications in id order, at least once.
//
// Ids are allocated at insert but become visible at commit, so with several
// writers a lower id can show up after a higher one was delivered. The
// checkpoint only advances over contiguous ids or settled gaps; everything
// above it that was already published is remembered in sent and skipped.
type Relay struct {
	notifications core.NotificationStore
	checkpoints   core.CheckpointStore
	publisher     core.NotificationPublisher
	cfg           Config
	now           func() time.Time

	// sent first publish time of ids above the checkpoint
	sent map[int64]time.Time
}

// New new relay worker
func New(
	notifications core.NotificationStore,
	checkpoints core.CheckpointStore,
	publisher core.NotificationPublisher,
	cfg Config,
) *Relay {
	return &Relay{
		notifications: notifications,
		checkpoints:   checkpoints,
		publisher:     publisher,
		cfg:           cfg,
		now:           time.Now,
		sent:          make(map[int64]time.Time),
	}
}

// Run run worker
func (w *Relay) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "relay")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := w.run(ctx); err == nil {
				dur = time.Millisecond
			} else {
				dur = w.cfg.Interval
			}
		}
	}
}

func (w *Relay) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	from, err := w.checkpoints.Load(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("checkpoints.Load", checkpointKey)
		return err
	}

	notifications, err := w.notifications.ListNotifications(ctx, from, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("notifications.List")
		return err
	}

	if len(notifications) == 0 {
		return errNoMore
	}

	var (
		now       = w.now()
		watermark = from
		advancing = true
		published int
	)

	for _, n := range notifications {
		seen, ok := w.sent[n.ID]
		if !ok {
			if err := w.publisher.Publish(ctx, n); err != nil {
				log.WithError(err).WithField("id", n.ID).Errorln("publisher.Publish")
				_ = w.save(ctx, from, watermark)
				return err
			}

			seen = now
			w.sent[n.ID] = seen
			published++
		}

		if advancing && (n.ID == watermark+1 || now.Sub(seen) >= w.cfg.Settle) {
			watermark = n.ID
			delete(w.sent, n.ID)
		} else {
			advancing = false
		}
	}

	if err := w.save(ctx, from, watermark); err != nil {
		return err
	}

	if published == 0 || len(notifications) < w.cfg.Batch {
		return errNoMore
	}

	return nil
}

func (w *Relay) save(ctx context.Context, from, watermark int64) error {
	if watermark <= from {
		return nil
	}

	if err := w.checkpoints.Save(ctx, checkpointKey, watermark); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("checkpoints.Save", watermark)
		return err
	}

	return nil
}
