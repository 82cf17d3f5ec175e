package middleware

import (
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
)

// Middlewares groups every middleware component so the router receives
// one value. Each is built once with the shared *server.Server.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
	Metrics         *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components. Without New Relic
// the tracing middleware is a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Metrics:         NewMetricsMiddleware(s),
	}
}
