package rest

import (
	"net/http"

	"credit/core"
	"credit/handler/param"
	"credit/handler/render"
	"credit/handler/views"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

const defaultBatchLimit = 50

func submitBatchHandler(executor core.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			User    string        `json:"user" valid:"required"`
			Actions []core.Action `json:"actions"`
			Funds   []core.Coin   `json:"funds"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		result, err := executor.Execute(r.Context(), &core.BatchRequest{
			AccountID: chi.URLParam(r, "account_id"),
			User:      params.User,
			Actions:   params.Actions,
			Funds:     params.Funds,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, result)
	}
}

func batchesHandler(batchStore core.BatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := cast.ToInt(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > 500 {
			limit = defaultBatchLimit
		}

		batches, err := batchStore.ListByAccount(r.Context(), chi.URLParam(r, "account_id"), limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		batchViews := make([]views.Batch, 0, len(batches))
		for _, b := range batches {
			batchViews = append(batchViews, views.BatchFromModel(b))
		}

		render.JSON(w, batchViews)
	}
}
