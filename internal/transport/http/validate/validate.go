package validate

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

var v = validator.New(validator.WithRequiredStructEnabled())

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Struct runs tag validation on a request DTO and converts failures into
// the client-facing validation error shape.
func Struct(dst any) error {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrValidation("invalid request body")
	}
	meta := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		meta[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
	}
	return domain.ErrValidationMeta("invalid request body", meta)
}

func IsUUID(s string) bool {
	return v.Var(s, "uuid4") == nil
}
