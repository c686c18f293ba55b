package core

import (
	"context"
	"time"
)

// SessionService api sessions
type SessionService interface {
	// Issue sign an access token for principal
	Issue(ctx context.Context, principal string, ttl time.Duration) (string, error)
	// Login verify accessToken and return the principal it was issued to
	Login(ctx context.Context, accessToken string) (string, error)
}
