package readiness

import (
	"context"
	"fmt"
	"time"

	"freight/pkg/logger"
	"freight/pkg/retrier"
	"freight/pkg/retrier/backoff_adapter"
)

// DefaultBackoff политика ожидания зависимостей при старте процесса.
var DefaultBackoff = retrier.Config{
	InitialInterval: time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

type Check func(ctx context.Context) error

type options struct {
	backoff retrier.Config
}

type Option func(*options)

func WithBackoff(cfg retrier.Config) Option {
	return func(o *options) {
		o.backoff = cfg
	}
}

// UntilReady повторяет check, пока зависимость не ответит или не истечет бюджет backoff.
// target попадает в логи и текст ошибки ("postgres", "kafka", имя gRPC-сервиса).
func UntilReady(ctx context.Context, log logger.Logger, target string, check Check, opts ...Option) error {
	o := options{backoff: DefaultBackoff}
	for _, opt := range opts {
		opt(&o)
	}

	depLog := log.With(logger.NewField("target", target))

	var attempt uint64
	err := backoff_adapter.New(o.backoff).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		err := check(ctx)
		if err != nil {
			depLog.With(
				logger.NewField("attempt", attempt),
				logger.NewField("error", err),
			).Warn("dependency not ready")
		}
		return err
	})
	if err != nil {
		depLog.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("dependency unreachable")
		return fmt.Errorf("%s not ready after %d attempts: %w", target, attempt, err)
	}

	depLog.With(logger.NewField("attempts", attempt)).Info("dependency ready")
	return nil
}
