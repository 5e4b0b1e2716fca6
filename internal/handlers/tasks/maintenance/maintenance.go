package maintenance

import (
	"context"
	"time"

	"freight/internal/service/reconciler"
	"freight/pkg/logger"
)

type Service interface {
	Maintain(ctx context.Context) (reconciler.MaintenanceReport, error)
}

type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}

type Maintenance struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func NewMaintenance(log handlerLogger, service Service, interval time.Duration) *Maintenance {
	return &Maintenance{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (m *Maintenance) TTL() time.Duration {
	return m.interval
}

func (m *Maintenance) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	report, err := m.service.Maintain(ctxWithTimeout)
	m.log.With(
		logger.NewField("expired_postings", report.ExpiredPostings),
		logger.NewField("orphaned_missions", report.Orphans.Processed),
		logger.NewField("orphans_failed", report.Orphans.Failed),
	).Info("maintenance")

	return err
}

func (m *Maintenance) Info() string {
	return "maintenance"
}
