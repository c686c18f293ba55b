package views

import (
	"custody/core"

	"github.com/shopspring/decimal"
)

// Status vault status
type Status struct {
	ChainID string `json:"chain_id"`
	Address string `json:"address"`
	Paused  bool   `json:"paused"`
}

// Balance balance of holder
type Balance struct {
	AssetID string          `json:"asset_id"`
	Holder  string          `json:"holder"`
	Balance decimal.Decimal `json:"balance"`
}

// Roles roles held by principal
type Roles struct {
	Principal string      `json:"principal"`
	Roles     []core.Role `json:"roles"`
}

// Correlation id returned by deposit and withdrawal requests
type Correlation struct {
	ID core.Hash `json:"id"`
}

// Notifications a page of notifications
type Notifications struct {
	Notifications []*core.Notification `json:"notifications"`
	Next          int64                `json:"next"`
}

// RolesOf roles view, never a null list
func RolesOf(principal string, roles []core.Role) Roles {
	if roles == nil {
		roles = []core.Role{}
	}

	return Roles{Principal: principal, Roles: roles}
}

// NotificationsOf page view; Next is the cursor for the following page
func NotificationsOf(list []*core.Notification, from int64) Notifications {
	if list == nil {
		list = []*core.Notification{}
	}

	next := from
	if len(list) > 0 {
		next = list[len(list)-1].ID
	}

	return Notifications{Notifications: list, Next: next}
}
