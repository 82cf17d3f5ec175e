package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemPayload struct {
	ID    string `json:"id" validate:"required,uuid"`
	Name  string `json:"name" validate:"required,max=5"`
	Place string `query:"place" validate:"omitempty,oneof=Fridge Pantry"`
}

func (p *itemPayload) Validate() error {
	return Struct(p)
}

type customPayload struct {
	Name string `json:"name"`
}

func (p *customPayload) Validate() error {
	if p.Name == "" {
		return CustomValidationErrors{{Field: "name", Message: "must not be blank"}}
	}
	return nil
}

func newContext(method, target, body string, contentType string) echo.Context {
	e := echo.New()
	e.Binder = &Binder{}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	c := newContext(http.MethodPost, "/", `{"id":"8c3f1b54-2b8e-4d5c-9a6e-1f0c2d3e4b5a","name":"Eggs"}`, echo.MIMEApplicationJSON)

	var p itemPayload
	require.NoError(t, BindAndValidate(c, &p))
	assert.Equal(t, "Eggs", p.Name)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []errs.FieldError
	}{
		{
			name: "missing fields",
			body: `{}`,
			want: []errs.FieldError{
				{Field: "id", Error: "is required"},
				{Field: "name", Error: "is required"},
			},
		},
		{
			name: "bad uuid and long name",
			body: `{"id":"nope","name":"Avocados"}`,
			want: []errs.FieldError{
				{Field: "id", Error: "must be a valid UUID"},
				{Field: "name", Error: "must not exceed 5 characters"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, "/", tt.body, echo.MIMEApplicationJSON)

			httpErr := requireHTTPError(t, BindAndValidate(c, &itemPayload{}))
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, "Validation failed", httpErr.Message)
			assert.Equal(t, tt.want, httpErr.Errors)
		})
	}
}

func TestBindAndValidate_QueryFieldName(t *testing.T) {
	c := newContext(http.MethodGet, "/?place=Garage", "", "")

	httpErr := requireHTTPError(t, BindAndValidate(c, &itemPayload{ID: "x"}))
	require.NotEmpty(t, httpErr.Errors)
	assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "place", Error: "must be one of: Fridge Pantry"})
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	c := newContext(http.MethodPost, "/", `{"name":`, echo.MIMEApplicationJSON)

	httpErr := requireHTTPError(t, BindAndValidate(c, &itemPayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(http.MethodPost, "/", `{"name":""}`, echo.MIMEApplicationJSON)

	httpErr := requireHTTPError(t, BindAndValidate(c, &customPayload{}))
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "must not be blank"}}, httpErr.Errors)
}
