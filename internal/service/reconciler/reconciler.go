package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/entities"
	"freight/internal/service/mission"
	"freight/pkg/logger"
)

const (
	jobReservations = "reservation_hold_sweep"
	jobPostings     = "posting_expiry"
	jobWindows      = "delivery_window_sweep"
	jobOrphans      = "orphan_sweep"
)

// Report итог одного прохода по миссиям.
type Report struct {
	Processed int
	Skipped   int
	Failed    int
}

type MaintenanceReport struct {
	ExpiredPostings int64
	Orphans         Report
}

type Service struct {
	cfg      Config
	log      serviceLogger
	loads    LoadRepository
	missions MissionRepository
	service  MissionService
	index    MissionIndex
	now      func() time.Time
}

func New(
	cfg Config,
	log serviceLogger,
	loads LoadRepository,
	missions MissionRepository,
	service MissionService,
	index MissionIndex,
) *Service {
	if cfg.OrphanTimeout <= 0 {
		cfg.OrphanTimeout = DefaultOrphanTimeout
	}

	return &Service{
		cfg:      cfg,
		log:      log,
		loads:    loads,
		missions: missions,
		service:  service,
		index:    index,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SweepReservations возвращает на доску грузы с истекшим удержанием.
func (s *Service) SweepReservations(ctx context.Context) (int64, error) {
	released, err := s.loads.ReleaseExpiredReservations(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("release expired reservations: %w", err)
	}
	ReconciledTotal.WithLabelValues(jobReservations, "released").Add(float64(released))
	return released, nil
}

// SweepWindows завершает живые миссии с истекшим окном доставки.
// Отключенные водители сюда не попадают: их окно заморожено до переподключения или таймаута.
func (s *Service) SweepWindows(ctx context.Context) (Report, error) {
	expired, err := s.missions.ListExpired(ctx, s.now())
	if err != nil {
		return Report{}, fmt.Errorf("list expired missions: %w", err)
	}
	return s.each(ctx, jobWindows, expired, s.service.Expire), nil
}

// Maintain истекшие объявления и осиротевшие миссии. Задачи независимы:
// ошибка одной не отменяет другую.
func (s *Service) Maintain(ctx context.Context) (MaintenanceReport, error) {
	var report MaintenanceReport

	expired, postingsErr := s.loads.ExpirePostings(ctx, s.now())
	if postingsErr != nil {
		postingsErr = fmt.Errorf("expire postings: %w", postingsErr)
	} else {
		report.ExpiredPostings = expired
		ReconciledTotal.WithLabelValues(jobPostings, "expired").Add(float64(expired))
	}

	orphans, orphansErr := s.SweepOrphans(ctx)
	report.Orphans = orphans

	return report, errors.Join(postingsErr, orphansErr)
}

func (s *Service) SweepOrphans(ctx context.Context) (Report, error) {
	orphaned, err := s.missions.ListOrphaned(ctx, s.now().Add(-s.cfg.OrphanTimeout))
	if err != nil {
		return Report{}, fmt.Errorf("list orphaned missions: %w", err)
	}
	return s.each(ctx, jobOrphans, orphaned, s.service.Orphan), nil
}

// RebuildIndex полностью перечитывает индекс живых миссий из хранилища.
func (s *Service) RebuildIndex(ctx context.Context) (int, error) {
	refs, err := s.missions.ListLive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list live missions: %w", err)
	}
	s.index.Replace(refs)
	return len(refs), nil
}

// each ошибка одной миссии не останавливает проход; гонка с водителем считается пропуском.
func (s *Service) each(
	ctx context.Context,
	job string,
	missions []entities.Mission,
	fn func(ctx context.Context, m *entities.Mission) error,
) Report {
	var report Report

	for i := range missions {
		if ctx.Err() != nil {
			break
		}

		m := &missions[i]
		err := fn(ctx, m)
		switch {
		case err == nil:
			report.Processed++
			ReconciledTotal.WithLabelValues(job, "processed").Inc()
		case isLostRace(err):
			report.Skipped++
			ReconciledTotal.WithLabelValues(job, "skipped").Inc()
			s.log.Warn("mission changed concurrently, skipped",
				logger.NewField("job", job),
				logger.NewField("bol_id", m.BOLID),
				logger.NewField("error", err),
			)
		default:
			report.Failed++
			ReconciledTotal.WithLabelValues(job, "failed").Inc()
			s.log.Error("reconcile mission",
				logger.NewField("job", job),
				logger.NewField("bol_id", m.BOLID),
				logger.NewField("driver_id", m.DriverID),
				logger.NewField("error", err),
			)
		}
	}

	return report
}

func isLostRace(err error) bool {
	return errors.Is(err, mission.ErrDuplicateSignal) ||
		errors.Is(err, mission.ErrMissionNotFound) ||
		errors.Is(err, mission.ErrMissionFinished)
}
