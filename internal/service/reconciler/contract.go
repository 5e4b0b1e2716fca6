//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reconciler_test
package reconciler

import (
	"context"
	"time"

	"freight/internal/entities"
	"freight/pkg/logger"
)

type LoadRepository interface {
	ReleaseExpiredReservations(ctx context.Context, now time.Time) (int64, error)
	ExpirePostings(ctx context.Context, now time.Time) (int64, error)
}

type MissionRepository interface {
	ListExpired(ctx context.Context, now time.Time) ([]entities.Mission, error)
	ListOrphaned(ctx context.Context, disconnectedBefore time.Time) ([]entities.Mission, error)
	ListLive(ctx context.Context) ([]entities.MissionRef, error)
}

type MissionService interface {
	Expire(ctx context.Context, m *entities.Mission) error
	Orphan(ctx context.Context, m *entities.Mission) error
}

type MissionIndex interface {
	Replace(refs []entities.MissionRef)
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
