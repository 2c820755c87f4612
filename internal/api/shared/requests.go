package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes limits the size of decoded request bodies.
const MaxBodyBytes = 1 << 20

// BodyField is the field name reported when the body as a whole is unusable.
const BodyField = "body"

// Validate is the shared validator instance. Field errors are reported
// under their JSON names.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v any) error {
	if validatable, ok := v.(interface{ Validate() error }); ok {
		return validatable.Validate()
	}
	return Validate.Struct(v)
}

// FieldErrors converts a decode or validation error into a field to
// message map suitable for ErrorResponse.Fields.
func FieldErrors(err error) map[string]string {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
		syntaxErr      *json.SyntaxError
		maxBytesErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErrs):
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = tagMessage(fe.Tag(), fe.Param())
		}
		return fields
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return map[string]string{typeErr.Field: "must be of type " + typeErr.Type.String()}
	case errors.As(err, &maxBytesErr):
		return map[string]string{BodyField: fmt.Sprintf("must not exceed %d bytes", maxBytesErr.Limit)}
	case errors.As(err, &syntaxErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &typeErr):
		return map[string]string{BodyField: "must be a valid JSON object"}
	default:
		return map[string]string{BodyField: "is invalid"}
	}
}

func tagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		return "failed on " + tag
	}
}
