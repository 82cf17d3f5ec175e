package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,uuid"`)
//   - Implement Validate() error that runs Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError is a validation issue that cannot be expressed with
// validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// validate is shared; validator caches struct metadata and is safe for
// concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON/query name rather than the Go field name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
//  1. c.Bind(payload) fills the struct from query params (GET, DELETE) and
//     the JSON body.
//  2. payload.Validate() applies the validation rules.
//
// Both failures come back as a 400 *errs.HTTPError. payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

// bindError keeps the message echo produced for a malformed request
// (e.g. "Syntax error: offset=9, error=invalid character ...").
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errs.NewBadRequestError(fmt.Sprint(he.Message), nil, nil)
	}
	return errs.NewBadRequestError(err.Error(), nil, nil)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, e := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, e := range validationErrors {
		var msg string

		switch e.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if e.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", e.Param())
			}

		case "max":
			if e.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", e.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", e.Param())

		case "uuid":
			msg = "must be a valid UUID"

		default:
			if e.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", e.Field(), e.Tag(), e.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", e.Field(), e.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: e.Field(),
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
