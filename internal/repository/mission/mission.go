package mission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/entities"
	"freight/internal/repository"
	"freight/internal/service/mission"
	"freight/internal/service/reservation"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const missionColumns = `
	m.id, m.load_id, m.bol_id, m.driver_id, m.equipment_id, m.ownership, m.status, m.tier,
	m.next_stop, m.stop_count, m.integrity, m.seal_state, m.cargo_secured, m.temp_monitoring,
	m.accepted_at, m.departed_at, m.window_expires_at, m.deposit_amount, m.disconnected_at, m.updated_at,
	l.cargo_class, l.distance, l.weight, l.shipper_tier, l.surge_multiplier,
	l.destination_x, l.destination_y, l.stops`

const missionFrom = `
	FROM active_missions m
	JOIN loads l ON l.id = m.load_id`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create уникальный индекс по driver_id не дает водителю держать две живые миссии.
func (r *Repository) Create(ctx context.Context, create entities.MissionCreate) (*entities.Mission, error) {
	query := `
		INSERT INTO active_missions (
			load_id, bol_id, driver_id, equipment_id, ownership, status, tier,
			next_stop, stop_count, integrity, seal_state, cargo_secured, temp_monitoring,
			accepted_at, window_expires_at, deposit_amount, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, 'at_origin', $6, 0, $7, 100, 'none', FALSE, $8, $9, $10, $11, NOW())
		RETURNING id, load_id, bol_id, driver_id, equipment_id, ownership, status, tier,
			next_stop, stop_count, integrity, seal_state, cargo_secured, temp_monitoring,
			accepted_at, departed_at, window_expires_at, deposit_amount, disconnected_at, updated_at
	`

	var missionDB MissionDB
	err := r.querier.QueryRow(
		ctx,
		query,
		create.LoadID,
		create.BOLID,
		create.DriverID,
		create.EquipmentID,
		create.Ownership.String(),
		create.Tier,
		create.StopCount,
		create.TempMonitoring,
		create.AcceptedAt,
		create.WindowExpiresAt,
		create.DepositAmount,
	).Scan(scanTargets(&missionDB)...)
	if err != nil {
		return nil, repository.Translate(err, "mission create", repository.Codes{
			repository.PgErrUniqueViolation: reservation.ErrDriverHasMission,
		})
	}

	return ToDomain(&missionDB, nil), nil
}

func (r *Repository) ExistsForDriver(ctx context.Context, driverID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM active_missions WHERE driver_id = $1)`

	var exists bool
	err := r.querier.QueryRow(ctx, query, driverID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected mission repository exists error: %w", err)
	}

	return exists, nil
}

func (r *Repository) GetByBOL(ctx context.Context, bolID int64) (*entities.Mission, error) {
	return r.getOne(ctx, `SELECT `+missionColumns+missionFrom+` WHERE m.bol_id = $1`, bolID)
}

func (r *Repository) GetByDriver(ctx context.Context, driverID string) (*entities.Mission, error) {
	return r.getOne(ctx, `SELECT `+missionColumns+missionFrom+` WHERE m.driver_id = $1`, driverID)
}

// Update условная запись: guard попадает в WHERE, ноль затронутых строк означает,
// что параллельный сигнал уже перевел миссию.
func (r *Repository) Update(ctx context.Context, bolID int64, guard entities.MissionGuard, patch entities.MissionPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("unexpected mission repository update error: empty patch")
	}
	patchDB := FromDomainPatch(patch)

	builder := qb.Update("active_missions")

	if patchDB.Status != nil {
		builder = builder.Set("status", patchDB.Status)
	}
	if patchDB.NextStop != nil {
		builder = builder.Set("next_stop", patchDB.NextStop)
	}
	if patchDB.Integrity != nil {
		builder = builder.Set("integrity", patchDB.Integrity)
	}
	if patchDB.SealState != nil {
		builder = builder.Set("seal_state", patchDB.SealState)
	}
	if patchDB.CargoSecured != nil {
		builder = builder.Set("cargo_secured", patchDB.CargoSecured)
	}
	if patchDB.DepartedAt != nil {
		builder = builder.Set("departed_at", patchDB.DepartedAt)
	}
	if patchDB.WindowExpiresAt != nil {
		builder = builder.Set("window_expires_at", patchDB.WindowExpiresAt)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	where := sq.Eq{
		"bol_id": bolID,
		"status": guard.Status.String(),
	}
	if guard.NextStop != nil {
		where["next_stop"] = *guard.NextStop
	}
	if guard.Integrity != nil {
		where["integrity"] = *guard.Integrity
	}
	if guard.CargoSecured != nil {
		where["cargo_secured"] = *guard.CargoSecured
	}
	builder = builder.Where(where)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected mission repository update error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected mission repository update error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return mission.ErrDuplicateSignal
	}

	return nil
}

// Delete условное удаление: сверка дополняет статус условиями своего снимка,
// поэтому переподключившийся водитель или сдвинутое окно дают ноль строк.
func (r *Repository) Delete(ctx context.Context, bolID int64, removal entities.MissionRemoval) error {
	where := sq.And{sq.Eq{"bol_id": bolID, "status": removal.Status.String()}}
	if removal.DisconnectedBy != nil {
		where = append(where,
			sq.NotEq{"disconnected_at": nil},
			sq.LtOrEq{"disconnected_at": *removal.DisconnectedBy},
		)
	}
	if removal.ExpiredBy != nil {
		where = append(where,
			sq.LtOrEq{"window_expires_at": *removal.ExpiredBy},
			sq.Eq{"disconnected_at": nil},
		)
	}

	query, args, err := qb.Delete("active_missions").Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("unexpected mission repository delete error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected mission repository delete error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return mission.ErrDuplicateSignal
	}

	return nil
}

// MarkDisconnected повторное отключение без переподключения не сдвигает момент разрыва.
func (r *Repository) MarkDisconnected(ctx context.Context, driverID string, at time.Time) (*entities.MissionRef, error) {
	query := `
		UPDATE active_missions
		SET disconnected_at = $2, updated_at = NOW()
		WHERE driver_id = $1 AND disconnected_at IS NULL
		RETURNING id, bol_id, driver_id, status
	`

	var (
		ref    entities.MissionRef
		status string
	)
	err := r.querier.QueryRow(ctx, query, driverID, at).Scan(&ref.MissionID, &ref.BOLID, &ref.DriverID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("unexpected mission repository mark disconnected error: %w", err)
	}
	ref.Status = entities.MissionStatus(status)

	return &ref, nil
}

// ExtendOnReconnect окно сдвигается на длительность разрыва и disconnected_at сбрасывается
// в одном UPDATE, поэтому повторное переподключение ничего не находит.
func (r *Repository) ExtendOnReconnect(ctx context.Context, driverID string, at time.Time) (*entities.WindowExtension, error) {
	query := `
		WITH prev AS (
			SELECT id, disconnected_at
			FROM active_missions
			WHERE driver_id = $1 AND disconnected_at IS NOT NULL
			FOR UPDATE
		)
		UPDATE active_missions m
		SET window_expires_at = m.window_expires_at + GREATEST($2::timestamptz - prev.disconnected_at, INTERVAL '0'),
			disconnected_at = NULL,
			updated_at = NOW()
		FROM prev
		WHERE m.id = prev.id
		RETURNING m.bol_id, m.driver_id, m.window_expires_at, prev.disconnected_at
	`

	var (
		ext            entities.WindowExtension
		disconnectedAt time.Time
	)
	err := r.querier.QueryRow(ctx, query, driverID, at).
		Scan(&ext.BOLID, &ext.DriverID, &ext.WindowExpiresAt, &disconnectedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("unexpected mission repository extend window error: %w", err)
	}
	ext.Extension = max(at.Sub(disconnectedAt), 0)

	return &ext, nil
}

// ListExpired отключенных водителей не возвращает: их окно заморожено.
func (r *Repository) ListExpired(ctx context.Context, now time.Time) ([]entities.Mission, error) {
	query := `SELECT ` + missionColumns + missionFrom + `
		WHERE m.window_expires_at <= $1 AND m.disconnected_at IS NULL
		ORDER BY m.window_expires_at`

	return r.getMany(ctx, query, now)
}

func (r *Repository) ListOrphaned(ctx context.Context, disconnectedBefore time.Time) ([]entities.Mission, error) {
	query := `SELECT ` + missionColumns + missionFrom + `
		WHERE m.disconnected_at IS NOT NULL AND m.disconnected_at <= $1
		ORDER BY m.disconnected_at`

	return r.getMany(ctx, query, disconnectedBefore)
}

func (r *Repository) ListLive(ctx context.Context) ([]entities.MissionRef, error) {
	query := `SELECT id, bol_id, driver_id, status FROM active_missions ORDER BY id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected mission repository list live error: %w", err)
	}
	defer rows.Close()

	refs := make([]entities.MissionRef, 0, 64)
	for rows.Next() {
		var (
			ref    entities.MissionRef
			status string
		)
		err := rows.Scan(&ref.MissionID, &ref.BOLID, &ref.DriverID, &status)
		if err != nil {
			return nil, fmt.Errorf("unexpected mission repository list live error: %w", err)
		}
		ref.Status = entities.MissionStatus(status)
		refs = append(refs, ref)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected mission repository list live error: %w", err)
	}

	return refs, nil
}

func (r *Repository) getOne(ctx context.Context, query string, arg any) (*entities.Mission, error) {
	var (
		missionDB MissionDB
		loadDB    MissionLoadDB
	)
	err := r.querier.QueryRow(ctx, query, arg).Scan(joinedScanTargets(&missionDB, &loadDB)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mission.ErrMissionNotFound
		}
		return nil, fmt.Errorf("unexpected mission repository get error: %w", err)
	}

	return ToDomain(&missionDB, &loadDB), nil
}

func (r *Repository) getMany(ctx context.Context, query string, arg any) ([]entities.Mission, error) {
	rows, err := r.querier.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("unexpected mission repository list error: %w", err)
	}
	defer rows.Close()

	missions := make([]entities.Mission, 0, 8)
	for rows.Next() {
		var (
			missionDB MissionDB
			loadDB    MissionLoadDB
		)
		err := rows.Scan(joinedScanTargets(&missionDB, &loadDB)...)
		if err != nil {
			return nil, fmt.Errorf("unexpected mission repository list error: %w", err)
		}
		missions = append(missions, *ToDomain(&missionDB, &loadDB))
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected mission repository list error: %w", err)
	}

	return missions, nil
}

func scanTargets(m *MissionDB) []any {
	return []any{
		&m.ID,
		&m.LoadID,
		&m.BOLID,
		&m.DriverID,
		&m.EquipmentID,
		&m.Ownership,
		&m.Status,
		&m.Tier,
		&m.NextStop,
		&m.StopCount,
		&m.Integrity,
		&m.SealState,
		&m.CargoSecured,
		&m.TempMonitoring,
		&m.AcceptedAt,
		&m.DepartedAt,
		&m.WindowExpiresAt,
		&m.DepositAmount,
		&m.DisconnectedAt,
		&m.UpdatedAt,
	}
}

func joinedScanTargets(m *MissionDB, l *MissionLoadDB) []any {
	return append(scanTargets(m),
		&l.CargoClass,
		&l.Distance,
		&l.Weight,
		&l.ShipperTier,
		&l.SurgeMultiplier,
		&l.DestinationX,
		&l.DestinationY,
		&l.Stops,
	)
}
