package memory

import (
	"context"
	"time"

	"custody/core"

	"github.com/shopspring/decimal"
)

// session write set over the committed state
type session struct {
	base *state
	now  func() time.Time

	roles         map[roleKey]*core.RoleAssignment
	paused        *bool
	initialized   *bool
	sequence      *uint64
	balances      map[balanceKey]decimal.Decimal
	allowances    map[allowanceKey]decimal.Decimal
	notifications []*core.Notification
}

func newSession(base *state, now func() time.Time) *session {
	return &session{
		base:       base,
		now:        now,
		roles:      make(map[roleKey]*core.RoleAssignment),
		balances:   make(map[balanceKey]decimal.Decimal),
		allowances: make(map[allowanceKey]decimal.Decimal),
	}
}

func (s *session) commit() {
	for k, v := range s.roles {
		if v == nil {
			delete(s.base.roles, k)
		} else {
			s.base.roles[k] = v
		}
	}

	if s.paused != nil {
		s.base.paused = *s.paused
	}

	if s.initialized != nil {
		s.base.initialized = *s.initialized
	}

	if s.sequence != nil {
		s.base.sequence = *s.sequence
	}

	for k, v := range s.balances {
		s.base.balances[k] = v
	}

	for k, v := range s.allowances {
		s.base.allowances[k] = v
	}

	s.base.notifications = append(s.base.notifications, s.notifications...)
}

// roles

func (s *session) role(key roleKey) *core.RoleAssignment {
	if v, ok := s.roles[key]; ok {
		return v
	}

	return s.base.roles[key]
}

func (s *session) HasRole(ctx context.Context, principal string, role core.Role) (bool, error) {
	return s.role(roleKey{principal, role}) != nil, nil
}

func (s *session) AddRole(ctx context.Context, assignment *core.RoleAssignment) (bool, error) {
	key := roleKey{assignment.Principal, assignment.Role}
	if s.role(key) != nil {
		return false, nil
	}

	cp := *assignment
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = s.now()
	}

	s.roles[key] = &cp
	return true, nil
}

func (s *session) RemoveRole(ctx context.Context, principal string, role core.Role) (bool, error) {
	key := roleKey{principal, role}
	if s.role(key) == nil {
		return false, nil
	}

	s.roles[key] = nil
	return true, nil
}

func (s *session) CountRole(ctx context.Context, role core.Role) (int64, error) {
	var n int64
	for key := range s.base.roles {
		if _, staged := s.roles[key]; !staged && key.role == role {
			n++
		}
	}

	for key, v := range s.roles {
		if v != nil && key.role == role {
			n++
		}
	}

	return n, nil
}

func (s *session) ListRoles(ctx context.Context, principal string) ([]core.Role, error) {
	var roles []core.Role
	for _, role := range core.Roles {
		if s.role(roleKey{principal, role}) != nil {
			roles = append(roles, role)
		}
	}

	return roles, nil
}

// state

func (s *session) Paused(ctx context.Context) (bool, error) {
	if s.paused != nil {
		return *s.paused, nil
	}

	return s.base.paused, nil
}

func (s *session) SetPaused(ctx context.Context, paused bool) error {
	s.paused = &paused
	return nil
}

func (s *session) NextSequence(ctx context.Context) (uint64, error) {
	seq := s.base.sequence
	if s.sequence != nil {
		seq = *s.sequence
	}

	seq++
	s.sequence = &seq
	return seq, nil
}

func (s *session) Initialized(ctx context.Context) (bool, error) {
	if s.initialized != nil {
		return *s.initialized, nil
	}

	return s.base.initialized, nil
}

func (s *session) SetInitialized(ctx context.Context) error {
	v := true
	s.initialized = &v
	return nil
}

// assets

func (s *session) Balance(ctx context.Context, assetID, holder string) (decimal.Decimal, error) {
	key := balanceKey{assetID, holder}
	if v, ok := s.balances[key]; ok {
		return v, nil
	}

	if v, ok := s.base.balances[key]; ok {
		return v, nil
	}

	return decimal.Zero, nil
}

func (s *session) SetBalance(ctx context.Context, assetID, holder string, amount decimal.Decimal) error {
	s.balances[balanceKey{assetID, holder}] = amount
	return nil
}

func (s *session) Allowance(ctx context.Context, assetID, owner, spender string) (decimal.Decimal, error) {
	key := allowanceKey{assetID, owner, spender}
	if v, ok := s.allowances[key]; ok {
		return v, nil
	}

	if v, ok := s.base.allowances[key]; ok {
		return v, nil
	}

	return decimal.Zero, nil
}

func (s *session) SetAllowance(ctx context.Context, assetID, owner, spender string, amount decimal.Decimal) error {
	s.allowances[allowanceKey{assetID, owner, spender}] = amount
	return nil
}

// notifications

func (s *session) AppendNotification(ctx context.Context, notification *core.Notification) error {
	notification.ID = int64(len(s.base.notifications) + len(s.notifications) + 1)
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = s.now()
	}

	cp := *notification
	s.notifications = append(s.notifications, &cp)
	return nil
}

func (s *session) all() []*core.Notification {
	all := make([]*core.Notification, 0, len(s.base.notifications)+len(s.notifications))
	all = append(all, s.base.notifications...)
	return append(all, s.notifications...)
}

func (s *session) FindNotification(ctx context.Context, id int64) (*core.Notification, error) {
	all := s.all()
	if id <= 0 || id > int64(len(all)) {
		return nil, core.ErrNotFound
	}

	cp := *all[id-1]
	return &cp, nil
}

func (s *session) ListNotifications(ctx context.Context, from int64, limit int) ([]*core.Notification, error) {
	all := s.all()
	if from < 0 {
		from = 0
	}

	if from >= int64(len(all)) {
		return nil, nil
	}

	rest := all[from:]
	if limit > 0 && len(rest) > limit {
		rest = rest[:limit]
	}

	out := make([]*core.Notification, 0, len(rest))
	for _, n := range rest {
		cp := *n
		out = append(out, &cp)
	}

	return out, nil
}
