package mission_index_rebuild

import (
	"context"
	"time"

	"freight/pkg/logger"
)

type Service interface {
	RebuildIndex(ctx context.Context) (int, error)
}

type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}

// MissionIndexRebuild первый прогон при старте заполняет индекс до того, как сервер начнет принимать запросы.
type MissionIndexRebuild struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func NewMissionIndexRebuild(log handlerLogger, service Service, interval time.Duration) *MissionIndexRebuild {
	return &MissionIndexRebuild{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (r *MissionIndexRebuild) TTL() time.Duration {
	return r.interval
}

func (r *MissionIndexRebuild) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	count, err := r.service.RebuildIndex(ctxWithTimeout)
	if err != nil {
		return err
	}

	r.log.With(
		logger.NewField("live_missions", count),
	).Info("mission index rebuilt")

	return nil
}

func (r *MissionIndexRebuild) Info() string {
	return "mission index rebuild"
}
