package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/entities"

	"github.com/jackc/pgx/v5"
)

type DriverStatsDB struct {
	DriverID            string
	ConsecutiveReleases int
	CooldownUntil       *time.Time
	ReputationPoints    int64
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// GetStats водитель без строки в driver_stats считается новым: нулевые счетчики.
func (r *Repository) GetStats(ctx context.Context, driverID string) (*entities.DriverStats, error) {
	query := `
		SELECT driver_id, consecutive_releases, cooldown_until, reputation_points
		FROM driver_stats
		WHERE driver_id = $1
	`

	var statsDB DriverStatsDB
	err := r.querier.QueryRow(ctx, query, driverID).Scan(
		&statsDB.DriverID,
		&statsDB.ConsecutiveReleases,
		&statsDB.CooldownUntil,
		&statsDB.ReputationPoints,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entities.DriverStats{DriverID: driverID}, nil
		}
		return nil, fmt.Errorf("unexpected driver repository getstats error: %w", err)
	}

	return &entities.DriverStats{
		DriverID:            statsDB.DriverID,
		ConsecutiveReleases: statsDB.ConsecutiveReleases,
		CooldownUntil:       statsDB.CooldownUntil,
		ReputationPoints:    statsDB.ReputationPoints,
	}, nil
}

func (r *Repository) RegisterRelease(ctx context.Context, driverID string) (int, error) {
	query := `
		INSERT INTO driver_stats (driver_id, consecutive_releases)
		VALUES ($1, 1)
		ON CONFLICT (driver_id) DO UPDATE
		SET consecutive_releases = driver_stats.consecutive_releases + 1
		RETURNING consecutive_releases
	`

	var count int
	err := r.querier.QueryRow(ctx, query, driverID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unexpected driver repository register release error: %w", err)
	}

	return count, nil
}

// StartCooldown счетчик отказов обнуляется вместе с началом паузы.
func (r *Repository) StartCooldown(ctx context.Context, driverID string, until time.Time) error {
	query := `
		INSERT INTO driver_stats (driver_id, cooldown_until)
		VALUES ($1, $2)
		ON CONFLICT (driver_id) DO UPDATE
		SET cooldown_until = EXCLUDED.cooldown_until, consecutive_releases = 0
	`

	_, err := r.querier.Exec(ctx, query, driverID, until)
	if err != nil {
		return fmt.Errorf("unexpected driver repository start cooldown error: %w", err)
	}

	return nil
}

func (r *Repository) ResetReleases(ctx context.Context, driverID string) error {
	query := `
		UPDATE driver_stats
		SET consecutive_releases = 0
		WHERE driver_id = $1 AND consecutive_releases <> 0
	`

	_, err := r.querier.Exec(ctx, query, driverID)
	if err != nil {
		return fmt.Errorf("unexpected driver repository reset releases error: %w", err)
	}

	return nil
}

// AddReputation очки репутации не опускаются ниже нуля.
func (r *Repository) AddReputation(ctx context.Context, driverID string, delta int64) (int64, error) {
	query := `
		INSERT INTO driver_stats (driver_id, reputation_points)
		VALUES ($1, GREATEST($2::bigint, 0))
		ON CONFLICT (driver_id) DO UPDATE
		SET reputation_points = GREATEST(driver_stats.reputation_points + $2::bigint, 0)
		RETURNING reputation_points
	`

	var points int64
	err := r.querier.QueryRow(ctx, query, driverID, delta).Scan(&points)
	if err != nil {
		return 0, fmt.Errorf("unexpected driver repository add reputation error: %w", err)
	}

	return points, nil
}
