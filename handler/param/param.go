package param

import (
	"encoding/json"
	"fmt"
	"net/http"

	"custody/core"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding decode the json body into v and validate it
func Binding(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %v: %w", err, core.ErrInvalidArgument)
	}

	return validate(v)
}

// Query decode url query into v and validate it
func Query(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return fmt.Errorf("decode query: %v: %w", err, core.ErrInvalidArgument)
	}

	return validate(v)
}

func validate(v interface{}) error {
	if _, err := govalidator.ValidateStruct(v); err != nil {
		return fmt.Errorf("%v: %w", err, core.ErrInvalidArgument)
	}

	return nil
}
