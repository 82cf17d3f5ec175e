package router

import (
	"github.com/HarshiV3008/Assignment-2-Backend/internal/handler"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// shopping API: health, docs, static assets and metrics.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and the docs page, embedded in the binary.
	r.StaticFS("/static", static.Files)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
}
