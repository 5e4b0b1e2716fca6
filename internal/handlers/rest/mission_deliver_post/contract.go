//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=mission_deliver_post_test
package mission_deliver_post

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
	Deliver(ctx context.Context, driverID string, bolID int64, pos entities.Coord, convoySize int) (*entities.DeliveryOutcome, error)
}
