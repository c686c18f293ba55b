package hc

import (
	"context"
	"net/http"
	"time"

	"custody/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Probe readiness check, nil when healthy
type Probe func(ctx context.Context) error

// Handle handle hc request
func Handle(ver string, probe Probe) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, probe))
	return r
}

func handle(version string, probe Probe) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		body := render.H{
			"uptime":  uptime.String(),
			"version": version,
		}

		if probe != nil {
			if err := probe(r.Context()); err != nil {
				body["error"] = err.Error()
				render.Status(w, http.StatusServiceUnavailable, body)
				return
			}
		}

		render.JSON(w, body)
	}
}
