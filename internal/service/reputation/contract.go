//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reputation_test
package reputation

import (
	"context"

	"freight/internal/entities"
)

type Repository interface {
	GetStats(ctx context.Context, driverID string) (*entities.DriverStats, error)
	AddReputation(ctx context.Context, driverID string, delta int64) (int64, error)
}
