// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request-scoped logging, tracing, metrics, CORS, rate
// limiting, panic recovery and the rendering of every error response.
package middleware
