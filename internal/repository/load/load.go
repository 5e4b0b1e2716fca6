package load

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/entities"
	"freight/internal/service/mission"
	"freight/internal/service/reservation"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, loadID int64) (*entities.Load, error) {
	query := `
		SELECT id, status, tier, cargo_class, origin_x, origin_y, destination_x, destination_y,
			stops, distance, weight, requirements, deposit_amount, shipper_tier, surge_multiplier,
			reserved_by, reservation_expires_at, posting_expires_at, created_at, updated_at
		FROM loads
		WHERE id = $1
	`

	var loadDB LoadDB
	err := r.querier.QueryRow(ctx, query, loadID).Scan(
		&loadDB.ID,
		&loadDB.Status,
		&loadDB.Tier,
		&loadDB.CargoClass,
		&loadDB.OriginX,
		&loadDB.OriginY,
		&loadDB.DestinationX,
		&loadDB.DestinationY,
		&loadDB.Stops,
		&loadDB.Distance,
		&loadDB.Weight,
		&loadDB.Requirements,
		&loadDB.DepositAmount,
		&loadDB.ShipperTier,
		&loadDB.SurgeMultiplier,
		&loadDB.ReservedBy,
		&loadDB.ReservationExpiresAt,
		&loadDB.PostingExpiresAt,
		&loadDB.CreatedAt,
		&loadDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reservation.ErrLoadNotFound
		}
		return nil, fmt.Errorf("unexpected load repository getbyid error: %w", err)
	}

	return ToDomain(&loadDB), nil
}

// Reserve условная запись: из двух параллельных резервов ровно один видит затронутую строку.
func (r *Repository) Reserve(ctx context.Context, loadID int64, driverID string, expiresAt time.Time) error {
	query := `
		UPDATE loads
		SET status = 'reserved', reserved_by = $2, reservation_expires_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'available' AND posting_expires_at > NOW()
	`

	result, err := r.querier.Exec(ctx, query, loadID, driverID, expiresAt)
	if err != nil {
		return fmt.Errorf("unexpected load repository reserve error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return reservation.ErrLoadUnavailable
	}

	return nil
}

func (r *Repository) Release(ctx context.Context, loadID int64, driverID string) error {
	query := `
		UPDATE loads
		SET status = 'available', reserved_by = NULL, reservation_expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'reserved' AND reserved_by = $2
	`

	result, err := r.querier.Exec(ctx, query, loadID, driverID)
	if err != nil {
		return fmt.Errorf("unexpected load repository release error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return reservation.ErrReservationNotHeld
	}

	return nil
}

// Claim свободный груз или груз, зарезервированный этим же водителем.
func (r *Repository) Claim(ctx context.Context, loadID int64, driverID string) error {
	query := `
		UPDATE loads
		SET status = 'accepted', reserved_by = $2, reservation_expires_at = NULL, updated_at = NOW()
		WHERE id = $1
			AND (status = 'available' OR (status = 'reserved' AND reserved_by = $2))
	`

	result, err := r.querier.Exec(ctx, query, loadID, driverID)
	if err != nil {
		return fmt.Errorf("unexpected load repository claim error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return reservation.ErrLoadUnavailable
	}

	return nil
}

func (r *Repository) Finish(ctx context.Context, loadID int64, status entities.LoadStatus) error {
	query := `
		UPDATE loads
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'accepted'
	`

	result, err := r.querier.Exec(ctx, query, loadID, status.String())
	if err != nil {
		return fmt.Errorf("unexpected load repository finish error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return mission.ErrLoadStateChanged
	}

	return nil
}

func (r *Repository) ReleaseExpiredReservations(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE loads
		SET status = 'available', reserved_by = NULL, reservation_expires_at = NULL, updated_at = NOW()
		WHERE status = 'reserved' AND reservation_expires_at <= $1
	`

	result, err := r.querier.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("unexpected load repository release expired error: %w", err)
	}

	return result.RowsAffected(), nil
}

// ExpirePostings зарезервированные грузы не трогает: сначала их вернет очистка удержаний.
func (r *Repository) ExpirePostings(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE loads
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'available' AND posting_expires_at <= $1
	`

	result, err := r.querier.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("unexpected load repository expire postings error: %w", err)
	}

	return result.RowsAffected(), nil
}
