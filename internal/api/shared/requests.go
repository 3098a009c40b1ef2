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

	"github.com/phrazzld/task-api/internal/domain"
)

// MaxRequestBodyBytes caps the size of decoded request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrMalformedBody is wrapped by every decoding failure returned by DecodeJSON.
var ErrMalformedBody = errors.New("malformed request body")

// Global validator instance for reuse
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields, values of the
// wrong type, trailing data and malformed JSON are all rejected with a
// *domain.ValidationError that also wraps ErrMalformedBody.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return malformed("", "request body is required", nil)
	}

	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return malformed("", "request body must contain a single JSON object", err)
	}
	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return malformed("", "request body is required", err)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return malformed("", "request body is not valid JSON", err)
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return malformed("", "request body must be a JSON object", err)
		}
		return malformed(typeErr.Field, "has invalid type", err)
	case errors.As(err, &maxBytesErr):
		return malformed("", fmt.Sprintf("request body must not exceed %d bytes", maxBytesErr.Limit), err)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return malformed(field, "is not a recognised field", err)
	default:
		return malformed("", "request body is malformed", err)
	}
}

func malformed(field, message string, cause error) error {
	if cause == nil {
		return domain.NewValidationError(field, message, ErrMalformedBody)
	}
	return domain.NewValidationError(field, message, errors.Join(ErrMalformedBody, cause))
}

// ValidateRequest validates the given struct using the validator package.
// The first failing field is reported as a *domain.ValidationError.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), validationTagMessage(fe.Tag()), domain.ErrValidation)
	}
	return domain.NewValidationError("", "request is invalid", err)
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "has an invalid value"
	default:
		return "failed validation"
	}
}
