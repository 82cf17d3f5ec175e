package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/config"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(rateLimit float64) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
			Storage:       config.StorageConfig{Driver: config.DriverMemory, Table: "shopping"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "http error passes through",
			err:     errs.NewBadRequestError("Validation failed", nil, nil),
			status:  http.StatusBadRequest,
			message: "Validation failed",
		},
		{
			name:    "echo not found",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			message: "Route not found",
		},
		{
			name:    "echo method not allowed",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusMethodNotAllowed,
			message: "Method not allowed",
		},
		{
			name:    "echo too many requests",
			err:     echo.ErrTooManyRequests,
			status:  http.StatusTooManyRequests,
			message: "Too many requests",
		},
		{
			name:    "other echo error keeps its status",
			err:     echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported"),
			status:  http.StatusUnsupportedMediaType,
			message: "unsupported",
		},
		{
			name:    "echo error without string message",
			err:     echo.NewHTTPError(http.StatusRequestEntityTooLarge),
			status:  http.StatusRequestEntityTooLarge,
			message: http.StatusText(http.StatusRequestEntityTooLarge),
		},
		{
			name:    "plain error keeps its message",
			err:     errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			message: "connection refused",
		},
		{
			name:    "postgres error",
			err:     &pgconn.PgError{Code: "23502", Message: "null value in column", TableName: "shopping"},
			status:  http.StatusInternalServerError,
			message: "null value in column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := toHTTPError(tt.err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, errorStatus(nil, http.StatusOK))
	assert.Equal(t, http.StatusBadRequest, errorStatus(errs.NewBadRequestError("x", nil, nil), http.StatusOK))
	assert.Equal(t, http.StatusNotFound, errorStatus(echo.ErrNotFound, http.StatusOK))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(errors.New("boom"), http.StatusOK))
}

func TestGlobalErrorHandler_WritesJSON(t *testing.T) {
	global := NewGlobalMiddlewares(testServer(0))
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	global.GlobalErrorHandler(errs.NewBadRequestError("Validation failed", nil, []errs.FieldError{
		{Field: "name", Error: "is required"},
	}), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Validation failed","errors":[{"field":"name","error":"is required"}]}`, rec.Body.String())
}

func TestGlobalErrorHandler_CommittedResponse(t *testing.T) {
	global := NewGlobalMiddlewares(testServer(0))
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	global.GlobalErrorHandler(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestRecover_ReturnsInternalServerError(t *testing.T) {
	global := NewGlobalMiddlewares(testServer(0))
	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(global.Recover())
	e.GET("/", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: "", keep: false},
		{name: "kept when valid", incoming: "req-1", keep: true},
		{name: "replaced when too long", incoming: strings.Repeat("a", maxRequestIDLength+1), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			h := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})
			require.NoError(t, h(c))

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
				assert.LessOrEqual(t, len(seen), maxRequestIDLength)
			}
		})
	}
}

func TestEnhanceContext_StoresLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s := testServer(0)
	s.Logger = &logger

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(RequestIDKey, "req-42")

	assert.NotNil(t, GetLogger(c), "falls back to a no-op logger")

	h := NewContextEnhancer(s).EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo context")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		return nil
	})
	require.NoError(t, h(c))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"req-42"`)
		assert.Contains(t, line, `"method":"GET"`)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	rl := NewRateLimitMiddleware(testServer(0))

	calls := 0
	h := rl.Limit()(func(echo.Context) error {
		calls++
		return nil
	})

	e := echo.New()
	for range 5 {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		require.NoError(t, h(c))
	}
	assert.Equal(t, 5, calls)
}

func TestRateLimit_DeniesOverBurst(t *testing.T) {
	rl := NewRateLimitMiddleware(testServer(2))
	h := rl.Limit()(func(echo.Context) error { return nil })

	e := echo.New()
	results := make([]error, 0, 3)
	for range 3 {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		results = append(results, h(c))
	}

	assert.NoError(t, results[0])
	assert.NoError(t, results[1])

	var httpErr *errs.HTTPError
	require.ErrorAs(t, results[2], &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Status)
}
