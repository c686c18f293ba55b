package vault

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/logger"
)

type guardKey struct{}

func (v *Vault) entered(ctx context.Context) bool {
	owner, ok := ctx.Value(guardKey{}).(*Vault)
	return ok && owner == v
}

// acquire take mu, waiting only while the holder is not running asset code.
// A call that arrives while asset code runs may come from that code, with a
// context that carries no stamp; waiting would never end, so it is refused.
func (v *Vault) acquire() bool {
	if v.mu.TryLock() {
		return true
	}

	if v.foreign.Load() {
		return false
	}

	v.mu.Lock()
	return true
}

// guard serialize fn with every other mutating operation. The context
// handed to fn, and through it to asset code, is stamped; any entry point
// called with a stamped context is rejected instead of waiting on mu.
func (v *Vault) guard(ctx context.Context, fn func(ctx context.Context) error) error {
	if v.entered(ctx) || !v.acquire() {
		logger.FromContext(ctx).Warnln("reentrant call rejected")
		return core.ErrReentrancyRejected
	}

	defer v.mu.Unlock()

	return fn(context.WithValue(ctx, guardKey{}, v))
}

// view read only entry points reject reentry as well, reads issued from
// inside a guarded operation would observe uncommitted state
func (v *Vault) view(ctx context.Context, fn func(s core.Session) error) error {
	if v.entered(ctx) || v.foreign.Load() {
		return core.ErrReentrancyRejected
	}

	return v.store.RunInTx(ctx, fn)
}

// foreignCall run asset code while holding mu
func (v *Vault) foreignCall(fn func()) {
	v.foreign.Store(true)
	defer v.foreign.Store(false)

	fn()
}
