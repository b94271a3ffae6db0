package rest

import (
	"errors"
	"net/http"

	"credit/core"
	"credit/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	system *core.System,
	accountStore core.AccountStore,
	positionStore core.PositionStore,
	assetStore core.AssetStore,
	batchStore core.BatchStore,
	executor core.Executor,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/system", systemHandler(system))
	router.Get("/assets", assetsHandler(assetStore))
	router.Post("/assets", upsertAssetHandler(system, assetStore))
	router.Get("/accounts/{account_id}", accountHandler(accountStore, positionStore))
	router.Get("/accounts/{account_id}/batches", batchesHandler(batchStore))
	router.Post("/accounts/{account_id}/batches", submitBatchHandler(executor))
	router.Get("/swaps/estimate", estimateHandler(executor))

	return router
}

func systemHandler(system *core.System) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, render.H{
			"version":      system.Version,
			"max_slippage": system.MaxSlippage,
		})
	}
}
