package rest

import (
	"errors"
	"net/http"

	"custody/core"
	"custody/handler/auth"
	"custody/handler/render"
	"custody/handler/request"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	cfg core.Vault,
	vault core.VaultService,
	ledger core.LedgerService,
	notifications core.NotificationStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/status", statusHandler(cfg, vault))
	router.Get("/custody/{asset}", custodyHandler(vault))
	router.Get("/roles/{principal}", rolesHandler(vault))
	router.Get("/notifications", notificationsHandler(notifications))
	router.Get("/notifications/{id}", notificationHandler(notifications))
	router.Get("/assets/{asset}/balances/{holder}", balanceHandler(ledger))

	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired)

		r.Post("/deposits", depositHandler(vault))
		r.Post("/withdrawals", requestWithdrawalHandler(vault))
		r.Post("/withdrawals/execute", executeWithdrawalHandler(vault))
		r.Post("/roles/grant", grantRoleHandler(vault))
		r.Post("/roles/revoke", revokeRoleHandler(vault))
		r.Post("/pause", pauseHandler(vault, true))
		r.Post("/unpause", pauseHandler(vault, false))
		r.Post("/assets/{asset}/approve", approveHandler(cfg, ledger))
	})

	return router
}

// caller LoginRequired guarantees it is present
func caller(r *http.Request) string {
	principal, _ := request.NewContext(r.Context()).GetPrincipal()
	return principal
}
