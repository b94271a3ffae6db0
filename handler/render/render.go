package render

import (
	"encoding/json"
	"net/http"

	"credit/handler/codes"

	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

// Error write error with the twirp status mapping and the stable custom
// code in the body.
func Error(w http.ResponseWriter, err error) {
	twerr := codes.Twirp(err)
	status := twirp.ServerHTTPStatusFromErrorCode(twerr.Code())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	_ = enc.Encode(H{
		"code": twerr.Meta(codes.CustomCodeKey),
		"msg":  twerr.Msg(),
	})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("request", err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
