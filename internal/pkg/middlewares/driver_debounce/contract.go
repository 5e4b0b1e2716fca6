//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_debounce_test
package driver_debounce

import (
	"context"

	"freight/pkg/logger"
)

type Debouncer interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
