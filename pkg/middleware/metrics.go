package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger  *logrus.Logger
	enabled bool
}

// NewMetricsMiddleware tags every request with a request id and, when enabled,
// records request counts and latency per route.
func NewMetricsMiddleware(logger *logrus.Logger, enabled bool) Middleware {
	return &metricsMiddleware{
		logger:  logger,
		enabled: enabled,
	}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		requestID := c.Get(common.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(common.RequestIDHeader, requestID)
		c.Locals(common.TraceIdKey, requestID)
		c.Locals(common.LatencyContextKey, startTime)
		c.SetUserContext(context.WithValue(c.UserContext(), common.TraceIdKey, requestID))

		err := c.Next()

		// Errors returned to fiber are written by the error handler after this
		// point, so resolve the status the client will actually see.
		statusCode := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				statusCode = fiberErr.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}
		elapsed := time.Since(startTime)

		route := c.Route().Path
		m.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"route":      route,
			"status":     statusCode,
			"latency_ms": elapsed.Milliseconds(),
		}).Debug("request served")

		if m.enabled {
			prometheus.HTTPRequestTotal.WithLabelValues(c.Method(), route, strconv.Itoa(statusCode)).Inc()
			if prometheus.Config.EnableLatency {
				prometheus.HTTPRequestLatency.WithLabelValues(c.Method(), route).
					Observe(float64(elapsed.Microseconds()) / 1000)
			}
		}
		return err
	}
}
