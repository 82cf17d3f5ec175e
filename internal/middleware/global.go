package middleware

import (
	"net/http"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows browser clients from the configured origins. Only an OPTIONS
// request that carries an Origin header is answered as a preflight; a bare
// OPTIONS falls through to the router.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper: func(c echo.Context) bool {
			req := c.Request()
			return req.Method == http.MethodOptions && req.Header.Get(echo.HeaderOrigin) == ""
		},
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, RequestIDHeader},
	})
}

// errorStatus is the status the global error handler will write for err.
//
// When a handler returns an error echo has not written the status yet, so
// v.Status in the request logger would still read 200.
// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func errorStatus(err error, fallback int) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	case err != nil:
		return http.StatusInternalServerError
	}
	return fallback
}

// RequestLogger writes one "API" log line per request, at a severity
// picked from the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := errorStatus(v.Error, v.Status)

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into 500 responses.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return errs.NewInternalServerError()
		},
	})
}

// Secure adds the standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// toHTTPError maps any error a handler or echo produced onto *errs.HTTPError.
//
//   - *errs.HTTPError passes through
//   - echo 404 becomes "Route not found", echo 405 "Method not allowed"
//   - other echo errors keep their status and message
//   - anything else came from storage and becomes a 500 with its message
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return errs.NewNotFoundError("Route not found")
		case http.StatusMethodNotAllowed:
			return errs.NewMethodNotAllowedError()
		case http.StatusTooManyRequests:
			return errs.NewTooManyRequestsError()
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
// Every response body it writes is {"error": "<message>"}, plus field
// errors for validation failures.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	httpErr := toHTTPError(err)

	logger := *GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	_ = c.JSON(httpErr.Status, httpErr)
}
