package mission

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/entities"
	"freight/internal/service/ledger"
)

// ApplySignal единая точка входа для сигналов соответствия.
func (s *Service) ApplySignal(ctx context.Context, driverID string, bolID int64, signal entities.Signal) (*entities.Mission, error) {
	switch signal.Kind {
	case entities.SignalManifestVerified:
		return s.VerifyManifest(ctx, driverID, bolID)
	case entities.SignalWeighStationStamped:
		return s.StampWeighStation(ctx, driverID, bolID)
	case entities.SignalCargoSecured:
		return s.SecureCargo(ctx, driverID, bolID)
	case entities.SignalPreTripCompleted:
		return s.CompletePreTrip(ctx, driverID, bolID)
	case entities.SignalSealBreak:
		return s.BreakSeal(ctx, driverID, bolID)
	case entities.SignalIntegrityEvent:
		return s.IntegrityEvent(ctx, driverID, bolID, signal.Cause, signal.Loss)
	case entities.SignalCargoRepaired:
		return s.RepairCargo(ctx, driverID, bolID, signal.Amount)
	case entities.SignalTemperatureExcursion:
		return s.TemperatureExcursion(ctx, driverID, bolID, signal.Class)
	case entities.SignalWelfareRated:
		return s.RateWelfare(ctx, driverID, bolID, signal.Rating)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSignal, signal.Kind)
	}
}

func (s *Service) VerifyManifest(ctx context.Context, driverID string, bolID int64) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalManifestVerified.String(), err) }()

	m, bol, err := s.ownedWithBOL(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}
	if bol.ManifestVerified {
		return nil, ErrDuplicateSignal
	}

	verified := true
	err = s.updateFlags(ctx, bolID,
		entities.BOLFlagsPatch{ManifestVerified: &verified},
		entities.NewAuditEvent(bolID, entities.EventManifestVerified, nil),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) StampWeighStation(ctx context.Context, driverID string, bolID int64) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalWeighStationStamped.String(), err) }()

	m, bol, err := s.ownedWithBOL(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}
	if m.Status != entities.MissionInTransit {
		return nil, ErrInvalidTransition
	}
	if bol.WeighStationStamped {
		return nil, ErrDuplicateSignal
	}

	stamped := true
	err = s.updateFlags(ctx, bolID,
		entities.BOLFlagsPatch{WeighStationStamped: &stamped},
		entities.NewAuditEvent(bolID, entities.EventWeighStationStamped, nil),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) SecureCargo(ctx context.Context, driverID string, bolID int64) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalCargoSecured.String(), err) }()

	m, err = s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}
	if m.Status != entities.MissionAtOrigin {
		return nil, ErrInvalidTransition
	}
	if m.CargoSecured {
		return nil, ErrDuplicateSignal
	}

	secured, unsecured := true, false
	guard := entities.MissionGuard{Status: entities.MissionAtOrigin, CargoSecured: &unsecured}
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.update(ctx, m, guard, entities.MissionPatch{CargoSecured: &secured})
		if err != nil {
			return err
		}
		return s.ledger.Append(ctx, entities.NewAuditEvent(bolID, entities.EventCargoSecured, nil))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) CompletePreTrip(ctx context.Context, driverID string, bolID int64) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalPreTripCompleted.String(), err) }()

	m, bol, err := s.ownedWithBOL(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}
	if m.Status != entities.MissionAtOrigin {
		return nil, ErrInvalidTransition
	}
	if bol.PreTripDone {
		return nil, ErrDuplicateSignal
	}

	done := true
	err = s.updateFlags(ctx, bolID,
		entities.BOLFlagsPatch{PreTripDone: &done},
		entities.NewAuditEvent(bolID, entities.EventPreTripCompleted, nil),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) BreakSeal(ctx context.Context, driverID string, bolID int64) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalSealBreak.String(), err) }()

	m, err = s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}

	switch m.SealState {
	case entities.SealApplied:
	case entities.SealBroken:
		return nil, ErrDuplicateSignal
	default:
		return nil, fmt.Errorf("%w: no seal applied", ErrInvalidSignal)
	}

	broken := entities.SealBroken
	expected := m.Status
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.update(ctx, m, entities.MissionGuard{Status: expected}, entities.MissionPatch{SealState: &broken})
		if err != nil {
			return err
		}
		return s.updateFlags(ctx, bolID,
			entities.BOLFlagsPatch{SealState: &broken},
			entities.NewAuditEvent(bolID, entities.EventSealBroken, nil),
		)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// IntegrityEvent целостность только убывает и не опускается ниже нуля.
func (s *Service) IntegrityEvent(ctx context.Context, driverID string, bolID int64, cause string, loss int) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalIntegrityEvent.String(), err) }()

	if loss <= 0 {
		return nil, fmt.Errorf("%w: loss must be positive", ErrInvalidSignal)
	}

	m, err = s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}

	integrity := max(entities.MinIntegrity, m.Integrity-loss)
	err = s.changeIntegrity(ctx, m, integrity, entities.NewAuditEvent(bolID, entities.EventIntegrity, map[string]any{
		"cause":     cause,
		"loss":      loss,
		"integrity": integrity,
	}))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RepairCargo единственный способ поднять целостность, не выше 100.
func (s *Service) RepairCargo(ctx context.Context, driverID string, bolID int64, amount int) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalCargoRepaired.String(), err) }()

	if amount <= 0 {
		return nil, fmt.Errorf("%w: repair amount must be positive", ErrInvalidSignal)
	}

	m, err = s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}
	if m.Integrity >= entities.MaxIntegrity {
		return nil, fmt.Errorf("%w: cargo intact", ErrInvalidSignal)
	}

	integrity := min(entities.MaxIntegrity, m.Integrity+amount)
	err = s.changeIntegrity(ctx, m, integrity, entities.NewAuditEvent(bolID, entities.EventCargoRepaired, map[string]any{
		"amount":    amount,
		"integrity": integrity,
	}))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// TemperatureExcursion класс отклонения только ухудшается: clean -> minor -> significant.
func (s *Service) TemperatureExcursion(ctx context.Context, driverID string, bolID int64, class entities.TempClass) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalTemperatureExcursion.String(), err) }()

	if !class.IsValid() {
		return nil, fmt.Errorf("%w: unknown temperature class %q", ErrInvalidSignal, class)
	}

	m, bol, err := s.ownedWithBOL(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}
	if !m.TempMonitoring {
		return nil, fmt.Errorf("%w: cargo is not temperature controlled", ErrInvalidSignal)
	}
	if class.Severity() <= bol.TempClass.Severity() {
		return nil, ErrDuplicateSignal
	}

	err = s.updateFlags(ctx, bolID,
		entities.BOLFlagsPatch{TempClass: &class},
		entities.NewAuditEvent(bolID, entities.EventTemperatureExcursion, map[string]any{
			"from": bol.TempClass,
			"to":   class,
		}),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) RateWelfare(ctx context.Context, driverID string, bolID int64, rating int) (m *entities.Mission, err error) {
	defer func() { signalOutcome(entities.SignalWelfareRated.String(), err) }()

	if rating < entities.MinWelfareRating || rating > entities.MaxWelfareRating {
		return nil, ErrInvalidRating
	}

	m, bol, err := s.ownedWithBOL(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}
	if !m.CargoClass.IsLivestock() {
		return nil, ErrNotLivestock
	}
	if bol.WelfareRating != nil && *bol.WelfareRating == rating {
		return nil, ErrDuplicateSignal
	}

	err = s.updateFlags(ctx, bolID,
		entities.BOLFlagsPatch{WelfareRating: &rating},
		entities.NewAuditEvent(bolID, entities.EventWelfareRated, map[string]any{
			"rating": rating,
		}),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) changeIntegrity(ctx context.Context, m *entities.Mission, integrity int, event entities.AuditEvent) error {
	expectedIntegrity := m.Integrity
	guard := entities.MissionGuard{
		Status:    m.Status,
		Integrity: &expectedIntegrity,
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.update(ctx, m, guard, entities.MissionPatch{Integrity: &integrity})
		if err != nil {
			return err
		}
		return s.ledger.Append(ctx, event)
	})
}

// updateFlags проверка по прочитанной накладной только отсекает очевидные повторы,
// окончательно флаг защищает условие в WHERE.
func (s *Service) updateFlags(ctx context.Context, bolID int64, patch entities.BOLFlagsPatch, event entities.AuditEvent) error {
	err := s.ledger.UpdateFlags(ctx, bolID, patch, event)
	if errors.Is(err, ledger.ErrFlagsUnchanged) {
		return ErrDuplicateSignal
	}
	return err
}

func (s *Service) ownedWithBOL(ctx context.Context, driverID string, bolID int64) (*entities.Mission, *entities.BOL, error) {
	m, err := s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, nil, err
	}

	bol, err := s.ledger.GetBOL(ctx, bolID)
	if err != nil {
		return nil, nil, fmt.Errorf("get bol: %w", err)
	}
	return m, bol, nil
}
