package vault

import (
	"context"
	"fmt"

	"custody/core"

	"github.com/fox-one/pkg/logger"
)

// GrantRole admin only; granting a held role changes nothing and emits nothing
func (v *Vault) GrantRole(ctx context.Context, caller, principal string, role core.Role) error {
	canonicalize(&caller, &principal)
	log := logger.FromContext(ctx).WithField("principal", principal).WithField("role", role)

	var added bool
	err := v.guard(ctx, func(ctx context.Context) error {
		return v.store.RunInTx(ctx, func(s core.Session) error {
			if err := requireRole(ctx, s, caller, core.RoleAdmin); err != nil {
				return err
			}

			if err := validateRole(principal, role); err != nil {
				return err
			}

			ok, err := s.AddRole(ctx, &core.RoleAssignment{
				Principal: principal,
				Role:      role,
				GrantedBy: caller,
			})
			if err != nil || !ok {
				return err
			}

			added = true
			return s.AppendNotification(ctx, &core.Notification{
				Kind:         core.NotificationRoleGranted,
				Principal:    caller,
				Counterparty: principal,
				Role:         role,
			})
		})
	})
	if err != nil {
		log.WithError(err).Errorln("vault.GrantRole")
		return err
	}

	if added {
		log.Infoln("role granted")
	}

	return nil
}

// RevokeRole admin only; the last Admin can not be revoked
func (v *Vault) RevokeRole(ctx context.Context, caller, principal string, role core.Role) error {
	canonicalize(&caller, &principal)
	log := logger.FromContext(ctx).WithField("principal", principal).WithField("role", role)

	var removed bool
	err := v.guard(ctx, func(ctx context.Context) error {
		return v.store.RunInTx(ctx, func(s core.Session) error {
			if err := requireRole(ctx, s, caller, core.RoleAdmin); err != nil {
				return err
			}

			if err := validateRole(principal, role); err != nil {
				return err
			}

			held, err := s.HasRole(ctx, principal, role)
			if err != nil || !held {
				return err
			}

			if role == core.RoleAdmin {
				admins, err := s.CountRole(ctx, core.RoleAdmin)
				if err != nil {
					return err
				}

				if admins <= 1 {
					return fmt.Errorf("cannot revoke the last admin: %w", core.ErrInvalidArgument)
				}
			}

			if _, err := s.RemoveRole(ctx, principal, role); err != nil {
				return err
			}

			removed = true
			return s.AppendNotification(ctx, &core.Notification{
				Kind:         core.NotificationRoleRevoked,
				Principal:    caller,
				Counterparty: principal,
				Role:         role,
			})
		})
	})
	if err != nil {
		log.WithError(err).Errorln("vault.RevokeRole")
		return err
	}

	if removed {
		log.Infoln("role revoked")
	}

	return nil
}

// HasRole unknown roles are simply not held
func (v *Vault) HasRole(ctx context.Context, principal string, role core.Role) (bool, error) {
	canonicalize(&principal)
	var ok bool
	err := v.view(ctx, func(s core.Session) error {
		held, err := s.HasRole(ctx, principal, role)
		ok = held
		return err
	})

	return ok, err
}

// Roles roles held by principal
func (v *Vault) Roles(ctx context.Context, principal string) ([]core.Role, error) {
	canonicalize(&principal)
	var roles []core.Role
	err := v.view(ctx, func(s core.Session) error {
		list, err := s.ListRoles(ctx, principal)
		roles = list
		return err
	})

	return roles, err
}

func validateRole(principal string, role core.Role) error {
	if !core.ValidIdentity(principal) {
		return fmt.Errorf("invalid principal %q: %w", principal, core.ErrInvalidArgument)
	}

	if !role.Valid() {
		return fmt.Errorf("unknown role %q: %w", role, core.ErrInvalidArgument)
	}

	return nil
}
