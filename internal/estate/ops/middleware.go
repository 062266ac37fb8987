package ops

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"realtydesk/pkg/logger"
)

const (
	metricsNamespace = "estate"
	metricsSubsystem = "ops"
)

// Metrics содержит счетчики служебного HTTP сервера.
type Metrics struct {
	Requests *prometheus.CounterVec
}

// NewMetrics регистрирует счетчики служебного сервера в реестре метрик.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Total number of ops HTTP requests.",
		}, []string{"path", "code"}),
	}
	reg.MustRegister(m.Requests)
	return m
}

// newLoggerMiddleware логирует запросы к служебному серверу на уровне Debug.
func newLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		err := ctx.Next()

		logFields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Debug(requestCtx, "Request completed", logFields...)
		return nil
	}
}

// newRecoveryMiddleware восстанавливает обработчик после паники.
func newRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx)

		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()

				log.Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(stack)),
				)

				if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Internal Server Error",
				}); err != nil {
					log.Error(requestCtx, "Failed to send error response after panic", zap.Error(err))
				}
			}
		}()

		return ctx.Next()
	}
}

// newMetricsMiddleware учитывает запросы в счетчике по пути и коду ответа.
func newMetricsMiddleware(metrics *Metrics) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		err := ctx.Next()
		metrics.Requests.WithLabelValues(ctx.Path(), strconv.Itoa(ctx.Response().StatusCode())).Inc()
		return err
	}
}
