package delivery_window_sweep

import (
	"context"
	"time"

	"freight/internal/service/reconciler"
	"freight/pkg/logger"
)

type Service interface {
	SweepWindows(ctx context.Context) (reconciler.Report, error)
}

type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}

type DeliveryWindowSweep struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func NewDeliveryWindowSweep(log handlerLogger, service Service, interval time.Duration) *DeliveryWindowSweep {
	return &DeliveryWindowSweep{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *DeliveryWindowSweep) TTL() time.Duration {
	return d.interval
}

// Do завершает просроченные миссии; каждая финализируется своей транзакцией.
func (d *DeliveryWindowSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	report, err := d.service.SweepWindows(ctxWithTimeout)
	if report.Processed+report.Skipped+report.Failed > 0 {
		d.log.With(
			logger.NewField("expired_missions", report.Processed),
			logger.NewField("skipped", report.Skipped),
			logger.NewField("failed", report.Failed),
		).Info("delivery window sweep")
	}

	return err
}

func (d *DeliveryWindowSweep) Info() string {
	return "delivery window sweep"
}
