package rest

import (
	"net/http"

	"custody/core"
	"custody/handler/param"
	"custody/handler/render"
	"custody/handler/views"

	"github.com/go-chi/chi"
)

func depositHandler(vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body core.DepositInput
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		id, err := vault.Deposit(r.Context(), caller(r), body)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.Status(w, http.StatusCreated, views.Correlation{ID: id})
	}
}

func requestWithdrawalHandler(vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body core.WithdrawalInput
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		id, err := vault.RequestWithdrawal(r.Context(), caller(r), body)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.Status(w, http.StatusCreated, views.Correlation{ID: id})
	}
}

func executeWithdrawalHandler(vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body core.ExecutionInput
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := vault.ExecuteWithdrawal(r.Context(), caller(r), body); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Correlation{ID: body.WithdrawalID})
	}
}

func custodyHandler(vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID := chi.URLParam(r, "asset")

		balance, err := vault.CustodyBalance(r.Context(), assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Balance{AssetID: assetID, Balance: balance})
	}
}

func statusHandler(cfg core.Vault, vault core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paused, err := vault.IsPaused(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Status{
			ChainID: cfg.ChainID,
			Address: cfg.Address,
			Paused:  paused,
		})
	}
}
