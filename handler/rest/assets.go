package rest

import (
	"net/http"

	"custody/core"
	"custody/handler/param"
	"custody/handler/render"
	"custody/handler/views"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

// approveHandler caller approves spender, the vault unless given, to pull amount
func approveHandler(cfg core.Vault, ledger core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Spender string          `json:"spender" valid:"uuid,optional"`
			Amount  decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if body.Spender == "" {
			body.Spender = cfg.Address
		}

		assetID, owner := chi.URLParam(r, "asset"), caller(r)
		if err := ledger.Approve(r.Context(), assetID, owner, body.Spender, body.Amount); err != nil {
			render.Error(w, err)
			return
		}

		allowance, err := ledger.Allowance(r.Context(), assetID, owner, body.Spender)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset_id":  assetID,
			"owner":     owner,
			"spender":   body.Spender,
			"allowance": allowance,
		})
	}
}

func balanceHandler(ledger core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, holder := chi.URLParam(r, "asset"), chi.URLParam(r, "holder")

		balance, err := ledger.Balance(r.Context(), assetID, holder)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Balance{AssetID: assetID, Holder: holder, Balance: balance})
	}
}
