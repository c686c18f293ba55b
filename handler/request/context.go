package request

import (
	"context"
)

type key int

const (
	principalKey key = iota
)

// ContextX context extension
type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithPrincipal context with the authenticated caller
func (c ContextX) WithPrincipal(principal string) context.Context {
	return context.WithValue(c, principalKey, principal)
}

// GetPrincipal authenticated caller
func (c ContextX) GetPrincipal() (string, bool) {
	principal, ok := c.Value(principalKey).(string)
	return principal, ok && principal != ""
}
