//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=mission_stolen_post_test
package mission_stolen_post

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
	ResolveStolen(ctx context.Context, caller entities.Identity, bolID int64) (*entities.DeliveryOutcome, error)
}
