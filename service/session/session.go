package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custody/core"
	"custody/pkg/id"

	"github.com/bluele/gcache"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

var errInvalidSubject = errors.New("token subject is not a valid principal")

// New new session, capacity > 0 caches verified tokens
func New(signingKey, issuer string, capacity int) core.SessionService {
	var s core.SessionService = &session{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		sf:         &singleflight.Group{},
	}

	if capacity > 0 {
		s = &cacheSession{
			SessionService: s,
			tokens:         gcache.New(capacity).LRU().Build(),
		}
	}

	return s
}

type session struct {
	signingKey []byte
	issuer     string
	sf         *singleflight.Group
}

func (s *session) Issue(ctx context.Context, principal string, ttl time.Duration) (string, error) {
	if !core.ValidIdentity(principal) {
		return "", fmt.Errorf("issue token for %q: %w", principal, core.ErrInvalidArgument)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   principal,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        id.GenTraceID(),
	})

	return token.SignedString(s.signingKey)
}

func (s *session) Login(ctx context.Context, accessToken string) (string, error) {
	v, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		claims, err := s.parse(accessToken)
		if err != nil {
			return nil, err
		}

		return claims.Subject, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

func (s *session) parse(accessToken string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if !core.ValidIdentity(claims.Subject) {
		return nil, errInvalidSubject
	}

	return &claims, nil
}

// expiration remaining lifetime of an already verified token
func expiration(accessToken string) (time.Duration, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil || claims.ExpiresAt == nil {
		return 0, false
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return ttl, ttl > 0
}
