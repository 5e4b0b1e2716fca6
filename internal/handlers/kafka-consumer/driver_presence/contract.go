//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_presence_test
package driver_presence

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
	RecordDisconnect(ctx context.Context, driverID string, at time.Time) error
	RecordReconnect(ctx context.Context, driverID string, at time.Time) (*entities.WindowExtension, error)
}
