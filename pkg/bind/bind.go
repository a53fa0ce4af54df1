// Package bind decodes and validates an HTTP request body into a struct.
//
// Validation rules are go-playground/validator tags; failures are reported
// per field under the field's JSON name.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 4 << 20

var (
	// ErrBodyTooLarge is returned when the body exceeds the binder's limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrMalformedBody is returned when the body is not decodable JSON.
	ErrMalformedBody = errors.New("malformed JSON body")
)

// FieldErrors maps a JSON field name to a human-readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+" "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Binder decodes JSON bodies up to a size limit and validates the result.
// It is safe for concurrent use.
type Binder struct {
	validate *validator.Validate
	maxBytes int64
}

// New returns a Binder. A non-positive maxBytes uses DefaultMaxBodyBytes.
func New(maxBytes int64) *Binder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Binder{validate: v, maxBytes: maxBytes}
}

// JSON decodes r.Body into dest and validates it.
//
// Returns FieldErrors when the body decodes but breaks a rule or carries a
// value of the wrong JSON type, ErrBodyTooLarge or ErrMalformedBody otherwise.
func (b *Binder) JSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, b.maxBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, maxErr.Limit)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return FieldErrors{typeErr.Field: "must be of type " + jsonType(typeErr.Type)}
		}
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return b.Struct(dest)
}

// Struct validates an already populated struct. Returns nil or FieldErrors.
func (b *Binder) Struct(v any) error {
	err := b.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the top-level struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	}

	if param != "" {
		return fmt.Sprintf("failed the %q rule (%s)", fe.Tag(), param)
	}
	return fmt.Sprintf("failed the %q rule", fe.Tag())
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func jsonType(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case t.Kind() == reflect.String:
		return "string"
	case t.Kind() == reflect.Bool:
		return "boolean"
	case isNumberKind(t.Kind()):
		if t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64 {
			return "number"
		}
		return "integer"
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		return "array"
	case t.Kind() == reflect.Map || t.Kind() == reflect.Struct:
		return "object"
	}
	return t.String()
}
