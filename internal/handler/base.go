package handler

import (
	"reflect"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/middleware"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers (ShoppingHandler, HealthHandler) embed it to reach
// config, logger and metrics through *server.Server.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives the bound and validated
// request (Req, a pointer type) and returns a response or an error.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a successful handler result is written to
// the HTTP response.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the handler type in structured logs.
	GetOperation() string

	// AddAttributes attaches New Relic attributes that depend on the result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn == nil {
		return
	}
	// Listings report their size; http.status_code is set by EnhanceTracing.
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.items", v.Len())
	}
}

// newRequest returns a zero value of the type prototype points to, so no
// field from an earlier request leaks into the next bind.
func newRequest[Req validation.Validatable](prototype Req) Req {
	t := reflect.TypeOf(prototype)
	if t.Kind() != reflect.Pointer {
		return prototype
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// handleRequest is the shared execution pipeline for all typed handlers.
// It centralizes:
//
//   - request binding + validation
//   - structured logging (with request context)
//   - New Relic tracing attributes and error reporting
//   - timing (validation duration, handler duration, total duration)
//   - response writing
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", method+" "+route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with binding, validation, logging and
// tracing, and writes its result as JSON with the given status.
//
// req is a prototype; every request binds into a fresh copy of it.
//
//	e.GET("/", handler.Handle(h.Handler, h.ListItems, http.StatusOK, &ListItemsRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
