package mission

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"freight/internal/entities"
)

// Depart AtOrigin -> InTransit. Окно доставки уже идет с момента принятия и здесь не перезапускается.
func (s *Service) Depart(ctx context.Context, driverID string, bolID int64) (m *entities.Mission, err error) {
	defer func() { signalOutcome("depart", err) }()

	m, err = s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}

	switch m.Status {
	case entities.MissionAtOrigin:
	case entities.MissionInTransit, entities.MissionAtStop, entities.MissionAtDestination:
		return nil, ErrDuplicateSignal
	default:
		return nil, ErrInvalidTransition
	}

	if m.CargoClass.RequiresSecuring() && !m.CargoSecured {
		return nil, ErrCargoNotSecured
	}

	now := time.Now().UTC()
	status := entities.MissionInTransit
	patch := entities.MissionPatch{
		Status:     &status,
		DepartedAt: &now,
	}

	applySeal := m.CargoClass.RequiresSeal() && m.SealState == entities.SealNone
	if applySeal {
		seal := entities.SealApplied
		patch.SealState = &seal
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.update(ctx, m, entities.MissionGuard{Status: entities.MissionAtOrigin}, patch)
		if err != nil {
			return err
		}

		if applySeal {
			seal := entities.SealApplied
			err = s.updateFlags(ctx, m.BOLID,
				entities.BOLFlagsPatch{SealState: &seal},
				entities.NewAuditEvent(m.BOLID, entities.EventSealApplied, nil),
			)
			if err != nil {
				return fmt.Errorf("apply seal: %w", err)
			}
		}

		return s.ledger.Append(ctx, entities.NewAuditEvent(m.BOLID, entities.EventDeparted, map[string]any{
			"departed_at": now,
		}))
	})
	if err != nil {
		return nil, err
	}

	s.index.Put(m.Ref())
	return m, nil
}

// CompleteStop остановки проходятся строго по порядку; AtStop фиксируется только в журнале.
func (s *Service) CompleteStop(ctx context.Context, driverID string, bolID int64, idx int, pos entities.Coord) (m *entities.Mission, err error) {
	defer func() { signalOutcome("stop_complete", err) }()

	m, err = s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}

	if m.Status != entities.MissionInTransit {
		return nil, ErrInvalidTransition
	}
	if idx < m.NextStop {
		return nil, ErrDuplicateSignal
	}
	if idx != m.NextStop || idx >= m.StopCount || idx >= len(m.Stops) {
		return nil, ErrStopOutOfOrder
	}
	if !withinRadius(pos, m.Stops[idx], s.cfg.StopRadius) {
		return nil, ErrNotAtLocation
	}

	expected := m.NextStop
	next := idx + 1
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.update(ctx, m,
			entities.MissionGuard{Status: entities.MissionInTransit, NextStop: &expected},
			entities.MissionPatch{NextStop: &next},
		)
		if err != nil {
			return err
		}

		return s.ledger.Append(ctx, entities.NewAuditEvent(m.BOLID, entities.EventStopCompleted, map[string]any{
			"stop":      idx,
			"remaining": m.StopCount - next,
			"status":    entities.MissionAtStop,
		}))
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Arrive(ctx context.Context, driverID string, bolID int64, pos entities.Coord) (m *entities.Mission, err error) {
	defer func() { signalOutcome("arrive", err) }()

	m, err = s.owned(ctx, driverID, bolID)
	if err != nil {
		return nil, err
	}

	switch m.Status {
	case entities.MissionInTransit:
	case entities.MissionAtDestination:
		return nil, ErrDuplicateSignal
	default:
		return nil, ErrInvalidTransition
	}
	if !m.StopsDone() {
		return nil, ErrStopsRemaining
	}
	if !withinRadius(pos, m.Destination, s.cfg.destinationRadius(m.Tier)) {
		return nil, ErrNotAtLocation
	}

	status := entities.MissionAtDestination
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.update(ctx, m, entities.MissionGuard{Status: entities.MissionInTransit}, entities.MissionPatch{Status: &status})
		if err != nil {
			return err
		}
		return s.ledger.Append(ctx, entities.NewAuditEvent(m.BOLID, entities.EventArrived, nil))
	})
	if err != nil {
		return nil, err
	}

	s.index.Put(m.Ref())
	return m, nil
}

// Deliver повторный вызов на уже финализированной накладной возвращает сохраненный результат.
func (s *Service) Deliver(ctx context.Context, driverID string, bolID int64, pos entities.Coord, convoySize int) (out *entities.DeliveryOutcome, err error) {
	defer func() { signalOutcome("deliver", err) }()

	if convoySize < 0 {
		return nil, fmt.Errorf("%w: negative convoy size", ErrInvalidSignal)
	}

	m, err := s.owned(ctx, driverID, bolID)
	if err != nil {
		if errors.Is(err, ErrMissionFinished) {
			return s.storedOutcome(ctx, bolID)
		}
		return nil, err
	}

	if err := s.deliverable(m); err != nil {
		return nil, err
	}
	if !withinRadius(pos, m.Destination, s.cfg.destinationRadius(m.Tier)) {
		return nil, ErrNotAtLocation
	}

	bol, err := s.ledger.GetBOL(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("get bol: %w", err)
	}

	now := time.Now().UTC()
	result := s.payout.Calculate(payoutInput(m, bol, now, convoySize))
	// размер колонны заявляет клиент, поэтому он остается в журнале накладной
	details := map[string]any{"convoy_size": convoySize}

	if result.Status == entities.PayoutRejected {
		return s.finish(ctx, m, bol, terminal{
			mission:   entities.MissionRejected,
			bol:       entities.BOLRejected,
			load:      entities.LoadCompleted,
			breakdown: result.Breakdown,
			revoke:    true,
			details:   details,
			at:        now,
		})
	}

	return s.finish(ctx, m, bol, terminal{
		mission:   entities.MissionDelivered,
		bol:       entities.BOLDelivered,
		load:      entities.LoadCompleted,
		amount:    result.Amount,
		breakdown: result.Breakdown,
		reward:    true,
		revoke:    true,
		details:   details,
		notify:    entities.NotificationMissionDelivered,
		at:        now,
	})
}

func (s *Service) Abandon(ctx context.Context, driverID string, bolID int64) (out *entities.DeliveryOutcome, err error) {
	defer func() { signalOutcome("abandon", err) }()

	m, err := s.owned(ctx, driverID, bolID)
	if err != nil {
		if errors.Is(err, ErrMissionFinished) {
			return nil, ErrDuplicateSignal
		}
		return nil, err
	}

	bol, err := s.ledger.GetBOL(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("get bol: %w", err)
	}

	return s.finish(ctx, m, bol, terminal{
		mission:  entities.MissionAbandoned,
		bol:      entities.BOLAbandoned,
		load:     entities.LoadExpired,
		penalize: true,
		revoke:   true,
		at:       time.Now().UTC(),
	})
}

// Expire вызывается только сверкой: окно доставки истекло. Удаление повторяет
// условие выборки, продленное или отключенное окно дает пропуск.
func (s *Service) Expire(ctx context.Context, m *entities.Mission) error {
	bol, err := s.ledger.GetBOL(ctx, m.BOLID)
	if err != nil {
		return fmt.Errorf("get bol: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.finish(ctx, m, bol, terminal{
		mission:  entities.MissionExpired,
		bol:      entities.BOLExpired,
		load:     entities.LoadExpired,
		penalize: true,
		revoke:   true,
		removal:  entities.MissionRemoval{ExpiredBy: &now},
		notify:   entities.NotificationMissionExpired,
		at:       now,
	})
	return err
}

// Orphan принудительно закрывает миссию водителя, отключенного дольше таймаута.
// Если водитель переподключился после выборки, удаление ничего не находит.
func (s *Service) Orphan(ctx context.Context, m *entities.Mission) error {
	if m.DisconnectedAt == nil {
		return ErrDuplicateSignal
	}

	bol, err := s.ledger.GetBOL(ctx, m.BOLID)
	if err != nil {
		return fmt.Errorf("get bol: %w", err)
	}

	_, err = s.finish(ctx, m, bol, terminal{
		mission:  entities.MissionAbandoned,
		bol:      entities.BOLAbandoned,
		load:     entities.LoadOrphaned,
		penalize: true,
		revoke:   true,
		orphaned: true,
		removal:  entities.MissionRemoval{DisconnectedBy: m.DisconnectedAt},
		notify:   entities.NotificationMissionOrphaned,
		at:       time.Now().UTC(),
	})
	return err
}

// ResolveStolen груз похищен: без выплаты и без штрафа репутации, документ остается у водителя для страховки.
func (s *Service) ResolveStolen(ctx context.Context, caller entities.Identity, bolID int64) (out *entities.DeliveryOutcome, err error) {
	defer func() { signalOutcome("stolen", err) }()

	m, err := s.live(ctx, caller, bolID)
	if err != nil {
		return nil, err
	}

	bol, err := s.ledger.GetBOL(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("get bol: %w", err)
	}

	return s.finish(ctx, m, bol, terminal{
		mission: entities.MissionStolen,
		bol:     entities.BOLStolen,
		load:    entities.LoadCompleted,
		at:      time.Now().UTC(),
	})
}

// ResolvePartial частичная доставка: floor(выплата x доля), залог удерживается.
func (s *Service) ResolvePartial(
	ctx context.Context,
	caller entities.Identity,
	bolID int64,
	pos entities.Coord,
	fraction float64,
) (out *entities.DeliveryOutcome, err error) {
	defer func() { signalOutcome("partial", err) }()

	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		return nil, ErrInvalidFraction
	}

	m, err := s.live(ctx, caller, bolID)
	if err != nil {
		return nil, err
	}
	if m.Status == entities.MissionAtOrigin {
		return nil, ErrInvalidTransition
	}
	if !withinRadius(pos, m.Destination, s.cfg.destinationRadius(m.Tier)) {
		return nil, ErrNotAtLocation
	}

	bol, err := s.ledger.GetBOL(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("get bol: %w", err)
	}

	now := time.Now().UTC()
	result := s.payout.Calculate(payoutInput(m, bol, now, 1))

	amount := int64(0)
	if result.Status == entities.PayoutSuccess {
		amount = int64(math.Floor(float64(result.Amount) * fraction))
	}

	return s.finish(ctx, m, bol, terminal{
		mission:   entities.MissionPartial,
		bol:       entities.BOLPartial,
		load:      entities.LoadCompleted,
		amount:    amount,
		breakdown: result.Breakdown,
		at:        now,
	})
}

func (s *Service) deliverable(m *entities.Mission) error {
	switch m.Status {
	case entities.MissionAtDestination:
		return nil
	case entities.MissionInTransit:
		if !m.StopsDone() {
			return ErrStopsRemaining
		}
		return nil
	default:
		return ErrInvalidTransition
	}
}

func (s *Service) storedOutcome(ctx context.Context, bolID int64) (*entities.DeliveryOutcome, error) {
	bol, err := s.ledger.GetBOL(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("get bol: %w", err)
	}

	if bol.Status != entities.BOLDelivered && bol.Status != entities.BOLRejected {
		return nil, ErrMissionFinished
	}

	return outcomeFromBOL(bol), nil
}

func outcomeFromBOL(bol *entities.BOL) *entities.DeliveryOutcome {
	out := &entities.DeliveryOutcome{
		BOLID:     bol.ID,
		BOLNumber: bol.BOLNumber,
		Status:    bol.Status,
		Breakdown: bol.Breakdown,
	}
	if bol.FinalPayout != nil {
		out.Payout = *bol.FinalPayout
	}
	if bol.DeliveredAt != nil {
		out.DeliveredAt = *bol.DeliveredAt
	}
	return out
}

func payoutInput(m *entities.Mission, bol *entities.BOL, deliveredAt time.Time, convoySize int) entities.PayoutInput {
	return entities.PayoutInput{
		Tier:            m.Tier,
		CargoClass:      m.CargoClass,
		SurgeMultiplier: m.SurgeMultiplier,
		Distance:        m.Distance,
		Weight:          m.Weight,
		StopCount:       m.StopCount,
		Ownership:       m.Ownership,
		AcceptedAt:      m.AcceptedAt,
		WindowExpiresAt: m.WindowExpiresAt,
		DeliveredAt:     deliveredAt,
		Integrity:       m.Integrity,
		TempMonitoring:  m.TempMonitoring,
		TempClass:       bol.TempClass,
		WelfareRating:   bol.WelfareRating,
		Compliance: entities.ComplianceFlags{
			WeighStation:     bol.WeighStationStamped,
			SealIntact:       m.SealState == entities.SealApplied,
			LicenseMatch:     bol.LicenseMatch,
			PreTrip:          bol.PreTripDone,
			ManifestVerified: bol.ManifestVerified,
		},
		ShipperTier: m.ShipperTier,
		ConvoySize:  convoySize,
	}
}
