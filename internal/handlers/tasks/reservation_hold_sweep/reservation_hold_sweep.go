package reservation_hold_sweep

import (
	"context"
	"time"

	"freight/pkg/logger"
)

type Service interface {
	SweepReservations(ctx context.Context) (int64, error)
}

type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}

type ReservationHoldSweep struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func NewReservationHoldSweep(log handlerLogger, service Service, interval time.Duration) *ReservationHoldSweep {
	return &ReservationHoldSweep{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (r *ReservationHoldSweep) TTL() time.Duration {
	return r.interval
}

func (r *ReservationHoldSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	released, err := r.service.SweepReservations(ctxWithTimeout)
	if released > 0 {
		r.log.With(
			logger.NewField("released_loads", released),
		).Info("reservation hold sweep")
	}

	return err
}

func (r *ReservationHoldSweep) Info() string {
	return "reservation hold sweep"
}
