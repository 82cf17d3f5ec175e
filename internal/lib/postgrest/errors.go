package postgrest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is a non-2xx PostgREST response.
//
// Message is the storage layer's own explanation, e.g.
// `relation "public.shopping" does not exist`.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("postgrest: unexpected status %d %s", e.Status, http.StatusText(e.Status))
}

// decodeError reads a PostgREST error body. Bodies that are not the usual
// {code,message,details,hint} object fall back to their plain text.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
		Hint    *string         `json:"hint"`
	}
	if json.Unmarshal(raw, &body) != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Code = body.Code
	apiErr.Message = body.Message
	if body.Hint != nil {
		apiErr.Hint = *body.Hint
	}

	// details is a string in most responses but may be null or an object.
	var details string
	if json.Unmarshal(body.Details, &details) == nil {
		apiErr.Details = details
	} else if len(body.Details) > 0 && string(body.Details) != "null" {
		apiErr.Details = string(body.Details)
	}

	return apiErr
}
