package rest

import (
	"net/http"

	"custody/core"
	"custody/handler/param"
	"custody/handler/render"
	"custody/handler/views"

	"github.com/go-chi/chi"
)

type roleBody struct {
	Principal string    `json:"principal" valid:"uuid,required"`
	Role      core.Role `json:"role" valid:"in(admin|operator),required"`
}

func grantRoleHandler(vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body roleBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := vault.GrantRole(r.Context(), caller(r), body.Principal, body.Role); err != nil {
			render.Error(w, err)
			return
		}

		rolesView(w, r, vault, body.Principal)
	}
}

func revokeRoleHandler(vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body roleBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := vault.RevokeRole(r.Context(), caller(r), body.Principal, body.Role); err != nil {
			render.Error(w, err)
			return
		}

		rolesView(w, r, vault, body.Principal)
	}
}

func rolesHandler(vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rolesView(w, r, vault, chi.URLParam(r, "principal"))
	}
}

func rolesView(w http.ResponseWriter, r *http.Request, vault core.VaultService, principal string) {
	roles, err := vault.Roles(r.Context(), principal)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, views.RolesOf(principal, roles))
}

func pauseHandler(vault core.VaultService, pause bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var err error
		if pause {
			err = vault.Pause(ctx, caller(r))
		} else {
			err = vault.Unpause(ctx, caller(r))
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		paused, err := vault.IsPaused(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"paused": paused})
	}
}
