//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=load_reserve_post_test
package load_reserve_post

import (
	"context"
	"time"

	"freight/internal/entities"
	"freight/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Reserve(ctx context.Context, driverID string, loadID int64, hold time.Duration) (*entities.Reservation, error)
}
