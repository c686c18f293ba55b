package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"custody/core"
	"custody/handler/render"
	"custody/handler/request"

	"github.com/fox-one/pkg/logger"
)

var errLoginRequired = errors.New("login required")

// HandleAuthentication attach the caller of a valid bearer token to the request context
func HandleAuthentication(sessions core.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			accessToken := getBearerToken(r)
			if accessToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := sessions.Login(ctx, accessToken)
			if err != nil {
				log.WithError(err).Debugln("parse access token error")
				next.ServeHTTP(w, r)
				return
			}

			ctx = logger.WithContext(ctx, log.WithField("caller", principal))
			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithPrincipal(principal)))
		}

		return http.HandlerFunc(fn)
	}
}

// LoginRequired reject requests without an authenticated caller
func LoginRequired(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := request.NewContext(r.Context()).GetPrincipal(); !ok {
			render.ErrorWithStatus(w, http.StatusUnauthorized, fmt.Errorf("%v: %w", errLoginRequired, core.ErrUnauthorized))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(s, "Bearer "))
}
