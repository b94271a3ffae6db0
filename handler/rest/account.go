package rest

import (
	"net/http"

	"credit/core"
	"credit/handler/render"
	"credit/handler/views"

	"github.com/go-chi/chi"
)

func accountHandler(accountStore core.AccountStore, positionStore core.PositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "account_id")

		account, err := accountStore.Find(r.Context(), accountID)
		if err != nil {
			render.Error(w, err)
			return
		}

		positions, err := positionStore.FindByAccount(r.Context(), accountID)
		if err != nil {
			render.Error(w, err)
			return
		}

		collaterals, debts := core.LedgersOf(positions)
		render.JSON(w, views.Account{
			AccountID:   account.AccountID,
			Owner:       account.Owner,
			Collaterals: collaterals.Compact(),
			Debts:       debts.Compact(),
		})
	}
}
