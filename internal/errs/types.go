package errs

import (
	"net/http"
)

// statusCode returns the default machine code for a status,
// e.g. 405 -> "METHOD_NOT_ALLOWED".
func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusNotFound),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewMethodNotAllowedError creates the 405 returned for any method the
// shopping endpoint does not serve.
func NewMethodNotAllowedError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusMethodNotAllowed),
		Message: "Method not allowed",
		Status:  http.StatusMethodNotAllowed,
	}
}

// NewTooManyRequestsError creates a 429 for rate-limited clients.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusTooManyRequests),
		Message: "Too many requests",
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a generic 500 Internal Server Error HTTPError.
//
// The message is the status text, not the real internal error; use it for
// panics and failures outside the storage layer.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewStorageError creates the 500 returned when a storage operation fails.
//
// Storage failures form a single category: the client sees the message the
// storage layer produced, whatever the cause. code classifies the failure
// for logs (e.g. "SHOPPING_NOT_NULL_VIOLATION"); nil means "STORAGE_ERROR".
func NewStorageError(message string, code *string) *HTTPError {
	formattedCode := "STORAGE_ERROR"
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}
