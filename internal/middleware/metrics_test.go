package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCollect(t *testing.T) {
	s := testServer(0)
	s.Metrics = metrics.New()

	global := NewGlobalMiddlewares(s)
	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(NewMetricsMiddleware(s).Collect())
	e.GET("/", func(c echo.Context) error { return c.JSON(http.StatusOK, []string{}) })
	e.POST("/", func(echo.Context) error { return errs.NewBadRequestError("Validation failed", nil, nil) })

	for _, r := range []struct{ method, target string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/"},
		{http.MethodPost, "/"},
		{http.MethodGet, "/random/path"},
	} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(r.method, r.target, nil))
	}

	requests := s.Metrics.HTTPRequests
	assert.Equal(t, 2.0, testutil.ToFloat64(requests.WithLabelValues(http.MethodGet, "/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues(http.MethodPost, "/", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}

func TestMetricsCollect_NoMetrics(t *testing.T) {
	s := testServer(0)

	e := echo.New()
	e.Use(NewMetricsMiddleware(s).Collect())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
