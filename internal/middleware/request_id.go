package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the request correlation id in both directions.
	RequestIDHeader = "X-Request-ID"

	RequestIDKey = "request_id"
)

// maxRequestIDLength bounds ids accepted from clients; longer ones are
// replaced.
const maxRequestIDLength = 128

// RequestID reuses the incoming X-Request-ID or generates a UUID, stores it
// in the Echo context and echoes it back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" || len(requestID) > maxRequestIDLength {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID returns the request id, or "" if RequestID did not run.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
