package redis

import (
	"context"
	"time"

	"freight/internal/pkg/config"
	"freight/internal/pkg/readiness"
	"freight/pkg/logger"
	"freight/pkg/retrier"

	goredis "github.com/redis/go-redis/v9"
)

// pingBackoff короче общего: Redis нужен только дребезгу.
var pingBackoff = retrier.Config{
	InitialInterval: time.Second,
	MaxInterval:     10 * time.Second,
	MaxElapsedTime:  time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

func NewClient(ctx context.Context, log logger.Logger, cfg *config.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	redisLog := log.With(
		logger.NewField("addr", cfg.Addr),
		logger.NewField("db", cfg.DB),
	)

	err := readiness.UntilReady(ctx, redisLog, "redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}, readiness.WithBackoff(pingBackoff))
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			redisLog.With(logger.NewField("error", closeErr)).Warn("close redis client")
		}
		return nil, err
	}

	return client, nil
}
