package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	// Field is the JSON field name the error relates to (e.g. "name").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and serializes as:
//
//	{"error": "<message>", "errors": [...]}
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: the message sent to the client.
//   - Status: HTTP status code, not serialized.
//   - Errors: list of per-field errors (validation), omitted when empty.
type HTTPError struct {
	Code    string       `json:"-"`
	Message string       `json:"error"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status: errors.Is(err, &HTTPError{}) answers
// "was this already translated for the client?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
