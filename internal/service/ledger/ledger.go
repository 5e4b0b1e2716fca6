package ledger

import (
	"context"
	"fmt"
	"maps"
	"time"

	"freight/internal/entities"
)

type Ledger struct {
	repository Repository
}

func New(repository Repository) *Ledger {
	return &Ledger{
		repository: repository,
	}
}

// Open заводит накладную и удержанный залог; вызывается внутри транзакции принятия.
func (l *Ledger) Open(ctx context.Context, create entities.BOLCreate, depositAmount int64) (*entities.BOL, error) {
	bol, err := l.repository.CreateBOL(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("create bol: %w", err)
	}

	deposit, err := l.repository.CreateDeposit(ctx, bol.ID, create.DriverID, depositAmount)
	if err != nil {
		return nil, fmt.Errorf("create deposit: %w", err)
	}
	bol.Deposit = deposit

	err = l.Append(ctx, entities.NewAuditEvent(bol.ID, entities.EventAccepted, map[string]any{
		"bol_number": bol.BOLNumber,
		"load_id":    bol.LoadID,
		"deposit":    depositAmount,
	}))
	if err != nil {
		return nil, err
	}

	return bol, nil
}

// Finalize переводит накладную в терминальный статус ровно один раз и фиксирует судьбу залога.
// details дописываются в терминальное событие рядом с выплатой.
// Движение денег выполняет вызывающая сторона.
func (l *Ledger) Finalize(
	ctx context.Context,
	bolID int64,
	status entities.BOLStatus,
	amount int64,
	breakdown []entities.BreakdownStep,
	at time.Time,
	details map[string]any,
) (*entities.Deposit, error) {
	if !status.IsTerminal() {
		return nil, ErrNotTerminalStatus
	}

	err := l.repository.FinalizeBOL(ctx, bolID, entities.BOLFinalize{
		Status:      status,
		FinalPayout: amount,
		Breakdown:   breakdown,
		DeliveredAt: at,
	})
	if err != nil {
		return nil, fmt.Errorf("finalize bol: %w", err)
	}

	data := make(map[string]any, len(details)+1)
	maps.Copy(data, details)
	data["payout"] = amount

	err = l.Append(ctx, entities.NewAuditEvent(bolID, terminalEvent(status), data))
	if err != nil {
		return nil, err
	}

	depositStatus := entities.DepositForfeited
	depositEvent := entities.EventDepositForfeited
	if status == entities.BOLDelivered {
		depositStatus = entities.DepositReturned
		depositEvent = entities.EventDepositReturned
	}

	deposit, err := l.repository.ResolveDeposit(ctx, bolID, depositStatus)
	if err != nil {
		return nil, fmt.Errorf("resolve deposit: %w", err)
	}

	err = l.Append(ctx, entities.NewAuditEvent(bolID, depositEvent, map[string]any{
		"amount": deposit.Amount,
	}))
	if err != nil {
		return nil, err
	}

	return deposit, nil
}

func (l *Ledger) Append(ctx context.Context, event entities.AuditEvent) error {
	if !event.Type.IsKnown() {
		return fmt.Errorf("%w: %s", ErrUnknownEventType, event.Type)
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	_, err := l.repository.AppendEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("append %s event: %w", event.Type, err)
	}
	return nil
}

// UpdateFlags пишет флаги соответствия и соответствующее событие аудита.
func (l *Ledger) UpdateFlags(ctx context.Context, bolID int64, patch entities.BOLFlagsPatch, event entities.AuditEvent) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}

	err := l.repository.PatchFlags(ctx, bolID, patch)
	if err != nil {
		return fmt.Errorf("patch bol flags: %w", err)
	}

	return l.Append(ctx, event)
}

func (l *Ledger) GetBOL(ctx context.Context, bolID int64) (*entities.BOL, error) {
	bol, err := l.repository.GetBOL(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("get bol: %w", err)
	}
	return bol, nil
}

// GetBOLWithHistory модель чтения: накладная, залог и весь журнал событий.
func (l *Ledger) GetBOLWithHistory(ctx context.Context, bolID int64) (*entities.BOL, error) {
	bol, err := l.GetBOL(ctx, bolID)
	if err != nil {
		return nil, err
	}

	deposit, err := l.repository.GetDeposit(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("get deposit: %w", err)
	}
	bol.Deposit = deposit

	events, err := l.repository.ListEvents(ctx, bolID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	bol.Events = events

	return bol, nil
}

func terminalEvent(status entities.BOLStatus) entities.AuditEventType {
	switch status {
	case entities.BOLDelivered:
		return entities.EventDelivered
	case entities.BOLRejected:
		return entities.EventRejected
	case entities.BOLStolen:
		return entities.EventStolen
	case entities.BOLAbandoned:
		return entities.EventAbandoned
	case entities.BOLExpired:
		return entities.EventExpired
	case entities.BOLPartial:
		return entities.EventPartial
	default:
		return entities.AuditEventType(status)
	}
}
