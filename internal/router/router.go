// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps the shopping endpoint and the
// system routes to their handlers.
package router

import (
	"net/http"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/handler"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/middleware"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance.
//
// Middleware order matters: the New Relic transaction must exist before
// the request logger is enhanced with its trace ids, and Recover sits
// inside the logging and metrics middleware so panics are counted as 500s.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.Binder = &validation.Binder{}

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Collect(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, s, h)
	registerShoppingRoutes(router, h, middlewares.RateLimit.Limit())

	return router
}

// registerShoppingRoutes maps the single shopping endpoint. Any other
// method on "/" is answered by the global error handler with 405. OPTIONS
// is registered explicitly so echo's automatic 204 does not answer it;
// CORS preflights never reach this handler.
func registerShoppingRoutes(r *echo.Echo, h *handler.Handlers, limit echo.MiddlewareFunc) {
	shopping := h.Shopping

	r.GET("/", handler.Handle(shopping.Handler, shopping.ListItems, http.StatusOK, &handler.ListItemsRequest{}), limit)
	r.POST("/", handler.Handle(shopping.Handler, shopping.CreateItem, http.StatusOK, &handler.CreateItemRequest{}), limit)
	r.PUT("/", handler.Handle(shopping.Handler, shopping.UpdateItem, http.StatusOK, &handler.UpdateItemRequest{}), limit)
	r.DELETE("/", handler.Handle(shopping.Handler, shopping.DeleteItem, http.StatusOK, &handler.DeleteItemRequest{}), limit)
	r.OPTIONS("/", func(echo.Context) error {
		return echo.ErrMethodNotAllowed
	})
}
