package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const (
	methodSweep = "Sweep"

	msgSweeperStarted = "realty sweeper started"
	msgSweeperStopped = "realty sweeper stopped"
	msgSweepCompleted = "realty sweep completed"
	msgNothingToSweep = "no unused realties to delete"
	msgErrSweepFailed = "realty sweep failed"

	metricsNamespace = "estate"
	metricsSubsystem = "sweeper"
)

// SweeperMetrics содержит счетчики фоновой очистки недвижимости.
type SweeperMetrics struct {
	Runs     prometheus.Counter
	Failures prometheus.Counter
	Deleted  prometheus.Counter
}

// NewSweeperMetrics регистрирует счетчики очистки в реестре метрик.
func NewSweeperMetrics(reg prometheus.Registerer) *SweeperMetrics {
	m := &SweeperMetrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "runs_total",
			Help:      "Total number of sweep runs.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "failures_total",
			Help:      "Total number of failed sweep runs.",
		}),
		Deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "deleted_realties_total",
			Help:      "Total number of realties deleted by the sweeper.",
		}),
	}
	reg.MustRegister(m.Runs, m.Failures, m.Deleted)
	return m
}

// Sweeper периодически удаляет объекты недвижимости,
// на которые дольше срока хранения не ссылается ни один контракт.
type Sweeper struct {
	realties  repositories.RealtyRepository
	interval  time.Duration
	retention time.Duration
	metrics   *SweeperMetrics
}

// NewSweeper создает новый экземпляр фоновой очистки недвижимости.
func NewSweeper(realties repositories.RealtyRepository, interval, retention time.Duration, metrics *SweeperMetrics) *Sweeper {
	return &Sweeper{
		realties:  realties,
		interval:  interval,
		retention: retention,
		metrics:   metrics,
	}
}

// Run выполняет очистку сразу после запуска и далее по расписанию,
// пока контекст не отменен. Ошибки очистки не останавливают цикл.
func (s *Sweeper) Run(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("method", methodSweep))
	log.Info(ctx, msgSweeperStarted,
		zap.Duration("interval", s.interval),
		zap.Duration("retention", s.retention))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, msgSweeperStopped)
			return
		case <-ticker.C:
			s.sweep(ctx, log)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context, log *logger.Logger) {
	s.metrics.Runs.Inc()

	deadline := time.Now().UTC().Add(-s.retention)
	deleted, err := s.realties.DeleteUnused(ctx, deadline)
	if err != nil {
		s.metrics.Failures.Inc()
		log.Error(ctx, msgErrSweepFailed, zap.Error(err))
		return
	}

	s.metrics.Deleted.Add(float64(deleted))
	if deleted == 0 {
		log.Debug(ctx, msgNothingToSweep)
		return
	}
	log.Info(ctx, msgSweepCompleted, zap.Int64("deleted", deleted))
}
