package param

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding decodes the request into v, from the query for GET and from the
// json body otherwise, then validates the struct tags.
func Binding(r *http.Request, v interface{}) error {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return err
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return err
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}
