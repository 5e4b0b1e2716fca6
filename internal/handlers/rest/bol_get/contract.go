//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bol_get_test
package bol_get

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
	GetBOLWithHistory(ctx context.Context, bolID int64) (*entities.BOL, error)
}
