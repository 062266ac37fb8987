// Package ops содержит служебный HTTP сервер: проверки живости и готовности
// и выдачу метрик.
package ops

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"realtydesk/pkg/logger"
)

// Константы статусов ответов.
const (
	statusOK          = "ok"
	statusReady       = "ready"
	statusUnavailable = "unavailable"

	msgDependencyNotReady = "readiness probe failed"
)

const probeTimeout = 5 * time.Second

// Pinger проверяет доступность внешней зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probes перечисляет зависимости, опрашиваемые проверкой готовности.
type Probes struct {
	Postgres Pinger
	Redis    Pinger
}

// SetupRouter настраивает маршруты служебного сервера.
func SetupRouter(app *fiber.App, probes Probes, registry *prometheus.Registry) {
	metrics := NewMetrics(registry)

	app.Use(newRecoveryMiddleware())
	app.Use(newLoggerMiddleware())
	app.Use(newMetricsMiddleware(metrics))

	app.Get("/healthz", healthzHandler())
	app.Get("/readyz", readyzHandler(probes))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

func healthzHandler() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": statusOK})
	}
}

func readyzHandler(probes Probes) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx, cancel := context.WithTimeout(ctx.Context(), probeTimeout)
		defer cancel()

		if err := probes.Postgres.Ping(requestCtx); err != nil {
			return dependencyNotReady(ctx, "postgres", err)
		}
		if err := probes.Redis.Ping(requestCtx); err != nil {
			return dependencyNotReady(ctx, "redis", err)
		}

		return ctx.JSON(fiber.Map{"status": statusReady})
	}
}

func dependencyNotReady(ctx fiber.Ctx, dependency string, err error) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Warn(requestCtx, msgDependencyNotReady,
		zap.String("dependency", dependency),
		zap.Error(err))

	return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status":     statusUnavailable,
		"dependency": dependency,
	})
}
