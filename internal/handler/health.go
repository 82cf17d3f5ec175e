package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/config"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/middleware"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/service"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its item store are
// reachable, for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	items *service.ItemService
}

func NewHealthHandler(s *server.Server, items *service.ItemService) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		items:   items,
	}
}

// CheckHealth runs the configured dependency checks.
//
// It returns:
//   - 200 OK if all checks pass (or checks are disabled)
//   - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	healthCfg := h.server.Config.Observability.HealthChecks
	isHealthy := true

	if healthCfg.Enabled {
		for _, name := range healthCfg.Checks {
			if name != config.HealthCheckStorage {
				logger.Warn().Str("check", name).Msg("unknown health check skipped")
				continue
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
			checkStart := time.Now()
			err := h.items.Ping(ctx)
			cancel()
			elapsed := time.Since(checkStart)

			if err != nil {
				isHealthy = false
				checks[name] = map[string]interface{}{
					"status":        "unhealthy",
					"response_time": elapsed.String(),
					"error":         err.Error(),
				}

				logger.Error().
					Err(err).
					Str("check", name).
					Dur("response_time", elapsed).
					Msg("health check failed")

				h.recordFailure(name, elapsed, err)
				continue
			}

			checks[name] = map[string]interface{}{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}

			logger.Debug().
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

// recordFailure sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
