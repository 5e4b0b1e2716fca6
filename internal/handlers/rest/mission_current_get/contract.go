//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=mission_current_get_test
package mission_current_get

import (
	"context"

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
	Current(ctx context.Context, driverID string) (*entities.Mission, error)
}
