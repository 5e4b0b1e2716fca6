package mission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/entities"
)

type Service struct {
	cfg Config
	log serviceLogger

	missions Repository
	loads    LoadRepository

	ledger     Ledger
	reputation ReputationService
	payout     PayoutCalculator
	index      MissionIndex

	wallet    WalletGateway
	inventory InventoryGateway
	notifier  Notifier
	txManager TxManager
}

func New(
	cfg Config,
	log serviceLogger,
	missions Repository,
	loads LoadRepository,
	ledger Ledger,
	reputation ReputationService,
	payout PayoutCalculator,
	index MissionIndex,
	wallet WalletGateway,
	inventory InventoryGateway,
	notifier Notifier,
	txManager TxManager,
) *Service {
	return &Service{
		cfg:        cfg,
		log:        log,
		missions:   missions,
		loads:      loads,
		ledger:     ledger,
		reputation: reputation,
		payout:     payout,
		index:      index,
		wallet:     wallet,
		inventory:  inventory,
		notifier:   notifier,
		txManager:  txManager,
	}
}

// Current сначала смотрит в индекс, затем в хранилище; индекс чинится по результату.
func (s *Service) Current(ctx context.Context, driverID string) (*entities.Mission, error) {
	if ref, ok := s.index.Get(driverID); ok {
		m, err := s.missions.GetByBOL(ctx, ref.BOLID)
		switch {
		case err == nil && m.DriverID == driverID:
			return m, nil
		case err == nil, errors.Is(err, ErrMissionNotFound):
			s.index.Delete(driverID, ref.BOLID)
		default:
			return nil, fmt.Errorf("get mission by bol: %w", err)
		}
	}

	m, err := s.missions.GetByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("get mission by driver: %w", err)
	}
	s.index.Put(m.Ref())

	return m, nil
}

// RecordDisconnect фиксирует начало разрыва; повторное событие без переподключения ничего не меняет.
func (s *Service) RecordDisconnect(ctx context.Context, driverID string, at time.Time) error {
	ref, err := s.missions.MarkDisconnected(ctx, driverID, at.UTC())
	if err != nil {
		return fmt.Errorf("mark disconnected: %w", err)
	}
	if ref == nil {
		return nil
	}

	event := entities.NewAuditEvent(ref.BOLID, entities.EventDriverDisconnected, map[string]any{
		"at": at.UTC(),
	})
	if err := s.ledger.Append(ctx, event); err != nil {
		return err
	}
	return nil
}

// RecordReconnect сдвигает окно на длительность разрыва одной условной записью,
// поэтому повторное переподключение для того же разрыва не удлиняет окно дважды.
func (s *Service) RecordReconnect(ctx context.Context, driverID string, at time.Time) (*entities.WindowExtension, error) {
	ext, err := s.missions.ExtendOnReconnect(ctx, driverID, at.UTC())
	if err != nil {
		return nil, fmt.Errorf("extend window on reconnect: %w", err)
	}
	if ext == nil {
		return nil, nil
	}

	event := entities.NewAuditEvent(ext.BOLID, entities.EventDriverReconnected, map[string]any{
		"extension_seconds": ext.Extension.Seconds(),
		"window_expires_at": ext.WindowExpiresAt,
	})
	if err := s.ledger.Append(ctx, event); err != nil {
		return nil, err
	}
	return ext, nil
}

// owned загружает миссию и проверяет владельца до любых изменений.
func (s *Service) owned(ctx context.Context, driverID string, bolID int64) (*entities.Mission, error) {
	m, err := s.missions.GetByBOL(ctx, bolID)
	if err == nil {
		if m.DriverID != driverID {
			return nil, ErrNotMissionOwner
		}
		return m, nil
	}
	if !errors.Is(err, ErrMissionNotFound) {
		return nil, fmt.Errorf("get mission: %w", err)
	}

	bol, bolErr := s.ledger.GetBOL(ctx, bolID)
	if bolErr != nil {
		return nil, err
	}
	if bol.DriverID != driverID {
		return nil, ErrNotMissionOwner
	}
	if bol.Status.IsTerminal() {
		return nil, ErrMissionFinished
	}
	return nil, err
}

// live загружает миссию для системных операций без проверки владельца.
func (s *Service) live(ctx context.Context, caller entities.Identity, bolID int64) (*entities.Mission, error) {
	if caller.Role != entities.RoleSystem {
		return nil, ErrForbidden
	}

	m, err := s.missions.GetByBOL(ctx, bolID)
	if err != nil {
		if errors.Is(err, ErrMissionNotFound) {
			bol, bolErr := s.ledger.GetBOL(ctx, bolID)
			if bolErr == nil && bol.Status.IsTerminal() {
				return nil, ErrMissionFinished
			}
		}
		return nil, fmt.Errorf("get mission: %w", err)
	}
	return m, nil
}

func (s *Service) update(ctx context.Context, m *entities.Mission, guard entities.MissionGuard, patch entities.MissionPatch) error {
	err := s.missions.Update(ctx, m.BOLID, guard, patch)
	if err != nil {
		return fmt.Errorf("update mission: %w", err)
	}
	applyPatch(m, patch)
	return nil
}

func applyPatch(m *entities.Mission, patch entities.MissionPatch) {
	if patch.Status != nil {
		m.Status = *patch.Status
	}
	if patch.NextStop != nil {
		m.NextStop = *patch.NextStop
	}
	if patch.Integrity != nil {
		m.Integrity = *patch.Integrity
	}
	if patch.SealState != nil {
		m.SealState = *patch.SealState
	}
	if patch.CargoSecured != nil {
		m.CargoSecured = *patch.CargoSecured
	}
	if patch.DepartedAt != nil {
		m.DepartedAt = patch.DepartedAt
	}
	if patch.WindowExpiresAt != nil {
		m.WindowExpiresAt = *patch.WindowExpiresAt
	}
}

func withinRadius(pos, target entities.Coord, radius float64) bool {
	return pos.DistanceTo(target) <= radius
}

func signalOutcome(signal string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrDuplicateSignal):
		result = "duplicate"
	case errors.Is(err, ErrNotMissionOwner), errors.Is(err, ErrForbidden):
		result = "unauthorized"
	case errors.Is(err, ErrInvalidTransition):
		result = "invalid_transition"
	default:
		result = "rejected"
	}
	SignalsTotal.WithLabelValues(signal, result).Inc()
}
