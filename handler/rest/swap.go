package rest

import (
	"net/http"

	"credit/core"
	"credit/handler/param"
	"credit/handler/render"
	"credit/pkg/number"
)

func estimateHandler(executor core.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			DenomIn  string `json:"denom_in" valid:"required"`
			AmountIn string `json:"amount_in" valid:"required"`
			DenomOut string `json:"denom_out" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amountOut, err := executor.Estimate(r.Context(), core.Coin{
			Denom:  params.DenomIn,
			Amount: number.Decimal(params.AmountIn),
		}, params.DenomOut)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, estimateView{
			Coin: core.Coin{Denom: params.DenomOut, Amount: amountOut},
		})
	}
}

type estimateView struct {
	Coin core.Coin `json:"coin"`
}
