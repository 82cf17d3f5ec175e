package middleware

import (
	"math"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// rateLimitExpiry is how long an idle client keeps its token bucket.
const rateLimitExpiry = 3 * time.Minute

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit allows server.rate_limit requests per second per client IP, with a
// burst of the same size. Rejected requests get a 429. A rate of zero
// disables limiting.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	rps := r.server.Config.Server.RateLimit
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     max(1, int(math.Ceil(rps))),
		ExpiresIn: rateLimitExpiry,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError()
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event when New Relic is on.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
