package handler

import (
	"errors"
	"net/http"

	"custody/core"
	"custody/handler/auth"
	"custody/handler/render"
	"custody/handler/rest"

	"github.com/go-chi/chi"
)

// Server server
type Server struct {
	cfg           *core.Config
	vault         core.VaultService
	ledger        core.LedgerService
	notifications core.NotificationStore
	sessions      core.SessionService
}

// New new server function
func New(
	cfg *core.Config,
	vault core.VaultService,
	ledger core.LedgerService,
	notifications core.NotificationStore,
	sessions core.SessionService,
) Server {
	return Server{
		cfg:           cfg,
		vault:         vault,
		ledger:        ledger,
		notifications: notifications,
		sessions:      sessions,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.HandleAuthentication(s.sessions))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	r.Mount("/", rest.Handle(s.cfg.Vault, s.vault, s.ledger, s.notifications))
	return r
}
