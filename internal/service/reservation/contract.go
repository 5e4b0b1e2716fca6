//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_test
package reservation

import (
	"context"
	"time"

	"freight/internal/entities"
	"freight/pkg/logger"
)

type LoadRepository interface {
	GetByID(ctx context.Context, loadID int64) (*entities.Load, error)
	Reserve(ctx context.Context, loadID int64, driverID string, expiresAt time.Time) error
	Release(ctx context.Context, loadID int64, driverID string) error
	Claim(ctx context.Context, loadID int64, driverID string) error
}

type DriverRepository interface {
	GetStats(ctx context.Context, driverID string) (*entities.DriverStats, error)
	RegisterRelease(ctx context.Context, driverID string) (int, error)
	StartCooldown(ctx context.Context, driverID string, until time.Time) error
	ResetReleases(ctx context.Context, driverID string) error
}

type MissionRepository interface {
	ExistsForDriver(ctx context.Context, driverID string) (bool, error)
	Create(ctx context.Context, mission entities.MissionCreate) (*entities.Mission, error)
}

type Ledger interface {
	Open(ctx context.Context, create entities.BOLCreate, depositAmount int64) (*entities.BOL, error)
}

type ReputationService interface {
	Tier(ctx context.Context, driverID string) (entities.ReputationTier, error)
}

type CredentialGateway interface {
	IsActive(ctx context.Context, driverID string, credential string) (bool, error)
}

type WalletGateway interface {
	Debit(ctx context.Context, driverID string, amount int64, memo string) (bool, error)
	Credit(ctx context.Context, driverID string, amount int64, memo string) error
}

type InventoryGateway interface {
	Grant(ctx context.Context, driverID string, artifact string) error
}

type MissionIndex interface {
	Put(ref entities.MissionRef)
}

type BOLNumberFactory interface {
	Next() string
}

type WindowFactory interface {
	CalculateWindow(tier int, distance float64, stops int, acceptedAt time.Time) time.Time
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
