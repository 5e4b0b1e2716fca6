package mission

import (
	"context"
	"fmt"
	"time"

	"freight/internal/entities"
	"freight/pkg/logger"
)

type terminal struct {
	mission   entities.MissionStatus
	bol       entities.BOLStatus
	load      entities.LoadStatus
	amount    int64
	breakdown []entities.BreakdownStep
	penalize  bool
	reward    bool
	revoke    bool
	orphaned  bool
	removal   entities.MissionRemoval
	details   map[string]any
	notify    entities.NotificationKind
	at        time.Time
}

// finish удаление миссии, финализация накладной, статус груза и репутация идут одной транзакцией;
// деньги, документ, индекс и уведомление после коммита.
func (s *Service) finish(ctx context.Context, m *entities.Mission, bol *entities.BOL, t terminal) (*entities.DeliveryOutcome, error) {
	var deposit *entities.Deposit

	removal := t.removal
	removal.Status = m.Status

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.missions.Delete(ctx, m.BOLID, removal)
		if err != nil {
			return fmt.Errorf("delete mission: %w", err)
		}

		if t.orphaned {
			err = s.ledger.Append(ctx, entities.NewAuditEvent(m.BOLID, entities.EventOrphaned, map[string]any{
				"disconnected_at": m.DisconnectedAt,
			}))
			if err != nil {
				return err
			}
		}

		deposit, err = s.ledger.Finalize(ctx, m.BOLID, t.bol, t.amount, t.breakdown, t.at, t.details)
		if err != nil {
			return fmt.Errorf("finalize bol: %w", err)
		}

		err = s.loads.Finish(ctx, m.LoadID, t.load)
		if err != nil {
			return fmt.Errorf("finish load: %w", err)
		}

		switch {
		case t.penalize:
			err = s.reputation.Penalize(ctx, m.DriverID, m.Tier)
		case t.reward:
			err = s.reputation.Reward(ctx, m.DriverID, m.Tier)
		}
		if err != nil {
			return fmt.Errorf("adjust reputation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.index.Delete(m.DriverID, m.BOLID)
	MissionOutcomesTotal.WithLabelValues(t.mission.String()).Inc()

	credit := t.amount
	if deposit != nil && deposit.Status == entities.DepositReturned {
		credit += deposit.Amount
	}
	if credit > 0 {
		s.credit(ctx, m, bol, credit, t.amount)
	}
	if t.mission == entities.MissionDelivered {
		PayoutAmount.Observe(float64(t.amount))
	}

	if t.revoke {
		err = s.inventory.Revoke(ctx, m.DriverID, bol.BOLNumber)
		if err != nil {
			s.log.Warn("revoke bol document",
				logger.NewField("driver_id", m.DriverID),
				logger.NewField("bol_number", bol.BOLNumber),
				logger.NewField("error", err),
			)
		}
	}

	if t.notify != "" && m.IsConnected() {
		err = s.notifier.Notify(ctx, entities.Notification{
			DriverID:  m.DriverID,
			Kind:      t.notify,
			BOLID:     m.BOLID,
			Message:   fmt.Sprintf("%s: %s", bol.BOLNumber, t.bol),
			CreatedAt: t.at,
		})
		if err != nil {
			s.log.Warn("notify driver",
				logger.NewField("driver_id", m.DriverID),
				logger.NewField("kind", t.notify),
				logger.NewField("error", err),
			)
		}
	}

	return &entities.DeliveryOutcome{
		BOLID:       m.BOLID,
		BOLNumber:   bol.BOLNumber,
		Status:      t.bol,
		Payout:      t.amount,
		Breakdown:   t.breakdown,
		DeliveredAt: t.at,
	}, nil
}

// credit кошелек at-least-once без отката: неудача фиксируется в журнале накладной.
func (s *Service) credit(ctx context.Context, m *entities.Mission, bol *entities.BOL, total, payout int64) {
	memo := fmt.Sprintf("payout: %s", bol.BOLNumber)
	err := s.wallet.Credit(ctx, m.DriverID, total, memo)

	eventType := entities.EventPayoutCredited
	data := map[string]any{
		"total":  total,
		"payout": payout,
	}
	if err != nil {
		eventType = entities.EventPayoutCreditFailed
		data["error"] = err.Error()
		s.log.Error("credit driver wallet",
			logger.NewField("driver_id", m.DriverID),
			logger.NewField("bol_number", bol.BOLNumber),
			logger.NewField("amount", total),
			logger.NewField("error", err),
		)
	}

	appendErr := s.ledger.Append(ctx, entities.NewAuditEvent(m.BOLID, eventType, data))
	if appendErr != nil {
		s.log.Error("append credit event",
			logger.NewField("bol_id", m.BOLID),
			logger.NewField("error", appendErr),
		)
	}
}
