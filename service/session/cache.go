package session

import (
	"context"

	"custody/core"

	"github.com/bluele/gcache"
)

type cacheSession struct {
	core.SessionService
	tokens gcache.Cache
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (string, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		if principal, ok := v.(string); ok {
			return principal, nil
		}
	}

	principal, err := s.SessionService.Login(ctx, accessToken)
	if err != nil {
		return "", err
	}

	if exp, ok := expiration(accessToken); ok {
		_ = s.tokens.SetWithExpire(accessToken, principal, exp)
	}

	return principal, nil
}
