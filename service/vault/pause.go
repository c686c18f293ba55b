package vault

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/logger"
)

// Pause admin only; pausing a paused vault is a no-op
func (v *Vault) Pause(ctx context.Context, caller string) error {
	return v.setPaused(ctx, caller, true)
}

// Unpause admin only; unpausing an active vault is a no-op
func (v *Vault) Unpause(ctx context.Context, caller string) error {
	return v.setPaused(ctx, caller, false)
}

func (v *Vault) setPaused(ctx context.Context, caller string, paused bool) error {
	canonicalize(&caller)
	log := logger.FromContext(ctx).WithField("caller", caller).WithField("paused", paused)

	kind := core.NotificationUnpaused
	if paused {
		kind = core.NotificationPaused
	}

	var changed bool
	err := v.guard(ctx, func(ctx context.Context) error {
		return v.store.RunInTx(ctx, func(s core.Session) error {
			if err := requireRole(ctx, s, caller, core.RoleAdmin); err != nil {
				return err
			}

			current, err := s.Paused(ctx)
			if err != nil || current == paused {
				return err
			}

			if err := s.SetPaused(ctx, paused); err != nil {
				return err
			}

			changed = true
			return s.AppendNotification(ctx, &core.Notification{
				Kind:      kind,
				Principal: caller,
			})
		})
	})
	if err != nil {
		log.WithError(err).Errorln("vault.setPaused")
		return err
	}

	if changed {
		log.Infoln("pause gate", kind)
	}

	return nil
}

// IsPaused pause gate state
func (v *Vault) IsPaused(ctx context.Context) (bool, error) {
	var paused bool
	err := v.view(ctx, func(s core.Session) error {
		p, err := s.Paused(ctx)
		paused = p
		return err
	})

	return paused, err
}
