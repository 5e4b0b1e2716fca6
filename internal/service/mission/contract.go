//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=mission_test
package mission

import (
	"context"
	"time"

	"freight/internal/entities"
	"freight/pkg/logger"
)

type Repository interface {
	GetByBOL(ctx context.Context, bolID int64) (*entities.Mission, error)
	GetByDriver(ctx context.Context, driverID string) (*entities.Mission, error)
	Update(ctx context.Context, bolID int64, guard entities.MissionGuard, patch entities.MissionPatch) error
	Delete(ctx context.Context, bolID int64, removal entities.MissionRemoval) error
	MarkDisconnected(ctx context.Context, driverID string, at time.Time) (*entities.MissionRef, error)
	ExtendOnReconnect(ctx context.Context, driverID string, at time.Time) (*entities.WindowExtension, error)
}

type LoadRepository interface {
	Finish(ctx context.Context, loadID int64, status entities.LoadStatus) error
}

type Ledger interface {
	GetBOL(ctx context.Context, bolID int64) (*entities.BOL, error)
	Finalize(ctx context.Context, bolID int64, status entities.BOLStatus, amount int64, breakdown []entities.BreakdownStep, at time.Time, details map[string]any) (*entities.Deposit, error)
	UpdateFlags(ctx context.Context, bolID int64, patch entities.BOLFlagsPatch, event entities.AuditEvent) error
	Append(ctx context.Context, event entities.AuditEvent) error
}

type ReputationService interface {
	Penalize(ctx context.Context, driverID string, loadTier int) error
	Reward(ctx context.Context, driverID string, loadTier int) error
}

type PayoutCalculator interface {
	Calculate(in entities.PayoutInput) entities.PayoutResult
}

type MissionIndex interface {
	Put(ref entities.MissionRef)
	Get(driverID string) (entities.MissionRef, bool)
	Delete(driverID string, bolID int64)
}

type WalletGateway interface {
	Credit(ctx context.Context, driverID string, amount int64, memo string) error
}

type InventoryGateway interface {
	Revoke(ctx context.Context, driverID string, artifact string) error
}

type Notifier interface {
	Notify(ctx context.Context, notification entities.Notification) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
