package core

import (
	"context"
	"time"
)

// Role named capability
type Role string

const (
	// RoleAdmin manages roles and the pause gate
	RoleAdmin Role = "admin"
	// RoleOperator executes withdrawals
	RoleOperator Role = "operator"
)

// Roles all known roles
var Roles = []Role{RoleAdmin, RoleOperator}

// Valid known role
func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}

	return false
}

func (r Role) String() string {
	return string(r)
}

// RoleAssignment principal holds role
type RoleAssignment struct {
	ID        int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	Principal string    `sql:"size:36" json:"principal,omitempty"`
	Role      Role      `sql:"size:24" json:"role,omitempty"`
	GrantedBy string    `sql:"size:36" json:"granted_by,omitempty"`
}

// RoleStore role assignment store interface
type RoleStore interface {
	HasRole(ctx context.Context, principal string, role Role) (bool, error)
	// AddRole reports false when the relation already exists
	AddRole(ctx context.Context, assignment *RoleAssignment) (bool, error)
	// RemoveRole reports false when the relation did not exist
	RemoveRole(ctx context.Context, principal string, role Role) (bool, error)
	CountRole(ctx context.Context, role Role) (int64, error)
	ListRoles(ctx context.Context, principal string) ([]Role, error)
}
