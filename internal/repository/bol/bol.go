package bol

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/entities"
	"freight/internal/repository"
	"freight/internal/service/ledger"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) CreateBOL(ctx context.Context, create entities.BOLCreate) (*entities.BOL, error) {
	query := `
		INSERT INTO bols (
			bol_number, load_id, driver_id, status, tier, cargo_class, distance, weight,
			stop_count, ownership, temp_class, license_match, seal_state, created_at
		)
		VALUES ($1, $2, $3, 'active', $4, $5, $6, $7, $8, $9, 'clean', $10, 'none', $11)
		RETURNING id
	`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		create.BOLNumber,
		create.LoadID,
		create.DriverID,
		create.Tier,
		create.CargoClass.String(),
		create.Distance,
		create.Weight,
		create.StopCount,
		create.Ownership.String(),
		create.LicenseMatch,
		create.CreatedAt,
	).Scan(&id)
	if err != nil {
		return nil, repository.Translate(err, "bol create", repository.Codes{
			repository.PgErrUniqueViolation: ledger.ErrBOLNumberConflict,
		})
	}

	return &entities.BOL{
		ID:           id,
		BOLNumber:    create.BOLNumber,
		LoadID:       create.LoadID,
		DriverID:     create.DriverID,
		Status:       entities.BOLActive,
		Tier:         create.Tier,
		CargoClass:   create.CargoClass,
		Distance:     create.Distance,
		Weight:       create.Weight,
		StopCount:    create.StopCount,
		Ownership:    create.Ownership,
		TempClass:    entities.TempClean,
		LicenseMatch: create.LicenseMatch,
		SealState:    entities.SealNone,
		CreatedAt:    create.CreatedAt,
	}, nil
}

var depositCodes = repository.Codes{
	repository.PgErrUniqueViolation:     ledger.ErrDepositAlreadyResolved,
	repository.PgErrForeignKeyViolation: ledger.ErrBOLNotFound,
}

func (r *Repository) CreateDeposit(ctx context.Context, bolID int64, driverID string, amount int64) (*entities.Deposit, error) {
	query := `
		INSERT INTO deposits (bol_id, driver_id, status, amount)
		VALUES ($1, $2, 'held', $3)
		RETURNING id, bol_id, driver_id, status, amount
	`

	var depositDB DepositDB
	err := r.querier.QueryRow(ctx, query, bolID, driverID, amount).Scan(
		&depositDB.ID,
		&depositDB.BOLID,
		&depositDB.DriverID,
		&depositDB.Status,
		&depositDB.Amount,
	)
	if err != nil {
		return nil, repository.Translate(err, "deposit create", depositCodes)
	}

	return DepositToDomain(&depositDB), nil
}

// FinalizeBOL переход из active в терминальный статус происходит ровно один раз.
func (r *Repository) FinalizeBOL(ctx context.Context, bolID int64, finalize entities.BOLFinalize) error {
	query := `
		UPDATE bols
		SET status = $2, final_payout = $3, breakdown_json = $4, delivered_at = $5
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.querier.Exec(
		ctx,
		query,
		bolID,
		finalize.Status.String(),
		finalize.FinalPayout,
		FromDomainBreakdown(finalize.Breakdown),
		finalize.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("unexpected bol repository finalize error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.missingOrFinalized(ctx, bolID)
	}

	return nil
}

func (r *Repository) ResolveDeposit(ctx context.Context, bolID int64, status entities.DepositStatus) (*entities.Deposit, error) {
	query := `
		UPDATE deposits
		SET status = $2
		WHERE bol_id = $1 AND status = 'held'
		RETURNING id, bol_id, driver_id, status, amount
	`

	var depositDB DepositDB
	err := r.querier.QueryRow(ctx, query, bolID, status.String()).Scan(
		&depositDB.ID,
		&depositDB.BOLID,
		&depositDB.DriverID,
		&depositDB.Status,
		&depositDB.Amount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrDepositAlreadyResolved
		}
		return nil, fmt.Errorf("unexpected bol repository resolve deposit error: %w", err)
	}

	return DepositToDomain(&depositDB), nil
}

// PatchFlags флаги меняются только у активной накладной. Предусловие каждого флага
// стоит в WHERE: отметка ставится один раз, класс температуры только ухудшается,
// пломба идет none -> applied -> broken. Ноль строк у активной накладной
// означает, что параллельный сигнал уже записал флаг.
func (r *Repository) PatchFlags(ctx context.Context, bolID int64, patch entities.BOLFlagsPatch) error {
	if patch.IsEmpty() {
		return ledger.ErrEmptyPatch
	}
	patchDB := FromDomainFlagsPatch(patch)

	builder := qb.Update("bols")
	where := sq.And{sq.Eq{"id": bolID, "status": entities.BOLActive.String()}}

	if patchDB.WeighStationStamped != nil {
		builder = builder.Set("weigh_station_stamped", patchDB.WeighStationStamped)
		where = append(where, sq.NotEq{"weigh_station_stamped": *patchDB.WeighStationStamped})
	}
	if patchDB.ManifestVerified != nil {
		builder = builder.Set("manifest_verified", patchDB.ManifestVerified)
		where = append(where, sq.NotEq{"manifest_verified": *patchDB.ManifestVerified})
	}
	if patchDB.PreTripDone != nil {
		builder = builder.Set("pre_trip_done", patchDB.PreTripDone)
		where = append(where, sq.NotEq{"pre_trip_done": *patchDB.PreTripDone})
	}
	if patchDB.TempClass != nil {
		builder = builder.Set("temp_class", patchDB.TempClass)
		where = append(where, sq.Eq{"temp_class": lessSevere(*patch.TempClass)})
	}
	if patchDB.WelfareRating != nil {
		builder = builder.Set("welfare_rating", patchDB.WelfareRating)
		where = append(where, sq.Expr("welfare_rating IS DISTINCT FROM ?", *patchDB.WelfareRating))
	}
	if patchDB.SealState != nil {
		builder = builder.Set("seal_state", patchDB.SealState)
		where = append(where, sq.Eq{"seal_state": sealPredecessor(*patch.SealState)})
	}

	builder = builder.Where(where)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected bol repository patch flags error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected bol repository patch flags error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.flagsRejected(ctx, bolID)
	}

	return nil
}

// lessSevere пустой список дает в squirrel условие (1=0): clean поверх чего угодно не пишется.
func lessSevere(class entities.TempClass) []string {
	classes := class.LessSevere()
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.String())
	}
	return out
}

func sealPredecessor(state entities.SealState) string {
	switch state {
	case entities.SealApplied:
		return entities.SealNone.String()
	case entities.SealBroken:
		return entities.SealApplied.String()
	default:
		return state.String()
	}
}

func (r *Repository) AppendEvent(ctx context.Context, event entities.AuditEvent) (int64, error) {
	query := `
		INSERT INTO bol_events (bol_id, type, data_json, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	data := event.Data
	if data == nil {
		data = map[string]any{}
	}

	var id int64
	err := r.querier.QueryRow(ctx, query, event.BOLID, event.Type.String(), data, event.OccurredAt).Scan(&id)
	if err != nil {
		return 0, repository.Translate(err, "bol event append", repository.Codes{
			repository.PgErrForeignKeyViolation: ledger.ErrBOLNotFound,
		})
	}

	return id, nil
}

func (r *Repository) GetBOL(ctx context.Context, bolID int64) (*entities.BOL, error) {
	query := `
		SELECT id, bol_number, load_id, driver_id, status, tier, cargo_class, distance, weight,
			stop_count, ownership, weigh_station_stamped, manifest_verified, pre_trip_done,
			temp_class, welfare_rating, license_match, seal_state, final_payout, breakdown_json,
			created_at, delivered_at
		FROM bols
		WHERE id = $1
	`

	var bolDB BOLDB
	err := r.querier.QueryRow(ctx, query, bolID).Scan(
		&bolDB.ID,
		&bolDB.BOLNumber,
		&bolDB.LoadID,
		&bolDB.DriverID,
		&bolDB.Status,
		&bolDB.Tier,
		&bolDB.CargoClass,
		&bolDB.Distance,
		&bolDB.Weight,
		&bolDB.StopCount,
		&bolDB.Ownership,
		&bolDB.WeighStationStamped,
		&bolDB.ManifestVerified,
		&bolDB.PreTripDone,
		&bolDB.TempClass,
		&bolDB.WelfareRating,
		&bolDB.LicenseMatch,
		&bolDB.SealState,
		&bolDB.FinalPayout,
		&bolDB.Breakdown,
		&bolDB.CreatedAt,
		&bolDB.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrBOLNotFound
		}
		return nil, fmt.Errorf("unexpected bol repository getbol error: %w", err)
	}

	return ToDomain(&bolDB), nil
}

func (r *Repository) GetDeposit(ctx context.Context, bolID int64) (*entities.Deposit, error) {
	query := `
		SELECT id, bol_id, driver_id, status, amount
		FROM deposits
		WHERE bol_id = $1
	`

	var depositDB DepositDB
	err := r.querier.QueryRow(ctx, query, bolID).Scan(
		&depositDB.ID,
		&depositDB.BOLID,
		&depositDB.DriverID,
		&depositDB.Status,
		&depositDB.Amount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrDepositNotFound
		}
		return nil, fmt.Errorf("unexpected bol repository getdeposit error: %w", err)
	}

	return DepositToDomain(&depositDB), nil
}

func (r *Repository) ListEvents(ctx context.Context, bolID int64) ([]entities.AuditEvent, error) {
	query := `
		SELECT id, bol_id, type, data_json, occurred_at
		FROM bol_events
		WHERE bol_id = $1
		ORDER BY id
	`

	rows, err := r.querier.Query(ctx, query, bolID)
	if err != nil {
		return nil, fmt.Errorf("unexpected bol repository list events error: %w", err)
	}
	defer rows.Close()

	eventsDB := make([]AuditEventDB, 0, 16)
	for rows.Next() {
		var eventDB AuditEventDB
		err := rows.Scan(
			&eventDB.ID,
			&eventDB.BOLID,
			&eventDB.Type,
			&eventDB.Data,
			&eventDB.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected bol repository list events error: %w", err)
		}
		eventsDB = append(eventsDB, eventDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected bol repository list events error: %w", err)
	}

	return EventsToDomain(eventsDB), nil
}

func (r *Repository) missingOrFinalized(ctx context.Context, bolID int64) error {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bols WHERE id = $1)`, bolID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected bol repository exists error: %w", err)
	}
	if !exists {
		return ledger.ErrBOLNotFound
	}
	return ledger.ErrBOLAlreadyFinalized
}

func (r *Repository) flagsRejected(ctx context.Context, bolID int64) error {
	var status string
	err := r.querier.QueryRow(ctx, `SELECT status FROM bols WHERE id = $1`, bolID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.ErrBOLNotFound
		}
		return fmt.Errorf("unexpected bol repository flags status error: %w", err)
	}
	if status != entities.BOLActive.String() {
		return ledger.ErrBOLAlreadyFinalized
	}
	return ledger.ErrFlagsUnchanged
}
