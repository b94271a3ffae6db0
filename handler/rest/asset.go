package rest

import (
	"errors"
	"net/http"
	"strings"

	"credit/core"
	"credit/handler/param"
	"credit/handler/render"

	"github.com/twitchtv/twirp"
)

func assetsHandler(assetStore core.AssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := assetStore.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, assets)
	}
}

func upsertAssetHandler(system *core.System, assetStore core.AssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			User        string `json:"user" valid:"required"`
			Denom       string `json:"denom" valid:"required"`
			Symbol      string `json:"symbol"`
			Whitelisted bool   `json:"whitelisted"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !system.IsAdmin(params.User) {
			render.Error(w, twirp.NewError(twirp.PermissionDenied, errors.New("admin required").Error()))
			return
		}

		asset := core.Asset{
			Denom:       params.Denom,
			Symbol:      strings.ToUpper(params.Symbol),
			Whitelisted: params.Whitelisted,
		}

		if err := assetStore.Save(r.Context(), &asset); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, asset)
	}
}
