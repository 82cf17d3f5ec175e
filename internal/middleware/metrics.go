package middleware

import (
	"net/http"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests no route matched, so arbitrary paths do
// not become label values.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records request count and latency per route.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

func (m *MetricsMiddleware) Collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.server.Metrics == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := errorStatus(err, c.Response().Status)
			route := c.Path()
			if route == "" || status == http.StatusNotFound {
				route = unmatchedRoute
			}

			m.server.Metrics.ObserveRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}
