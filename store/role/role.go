package role

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/store/db"
)

type roleStore struct {
	db *db.DB
}

// New new role store. The store is only ever bound to a transaction, so
// reads go through Update() and see the transaction's own writes.
func New(db *db.DB) core.RoleStore {
	return &roleStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.RoleAssignment{})

		if err := tx.AutoMigrate(core.RoleAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_role_assignments_principal_role", "principal", "role").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_role_assignments_role", "role").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *roleStore) HasRole(ctx context.Context, principal string, role core.Role) (bool, error) {
	var count int64
	if err := s.db.Update().Model(core.RoleAssignment{}).
		Where("principal = ? AND role = ?", principal, role).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *roleStore) AddRole(ctx context.Context, assignment *core.RoleAssignment) (bool, error) {
	held, err := s.HasRole(ctx, assignment.Principal, assignment.Role)
	if err != nil || held {
		return false, err
	}

	if err := s.db.Update().Create(assignment).Error; err != nil {
		return false, err
	}

	return true, nil
}

func (s *roleStore) RemoveRole(ctx context.Context, principal string, role core.Role) (bool, error) {
	tx := s.db.Update().
		Where("principal = ? AND role = ?", principal, role).
		Delete(core.RoleAssignment{})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (s *roleStore) CountRole(ctx context.Context, role core.Role) (int64, error) {
	var count int64
	err := s.db.Update().Model(core.RoleAssignment{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (s *roleStore) ListRoles(ctx context.Context, principal string) ([]core.Role, error) {
	var names []string
	if err := s.db.Update().Model(core.RoleAssignment{}).
		Where("principal = ?", principal).
		Order("role").
		Pluck("role", &names).Error; err != nil {
		return nil, err
	}

	roles := make([]core.Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, core.Role(name))
	}

	return roles, nil
}
