package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"freight/internal/pkg/config"
	"freight/internal/pkg/readiness"
	"freight/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns   = 10
	defaultMinConns   = 2
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 30 * time.Second
)

func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = int32(orDefault(cfg.MaxConns, defaultMaxConns)) //nolint:gosec // лимит проверен в config
	poolCfg.MinConns = int32(orDefault(cfg.MinConns, defaultMinConns)) //nolint:gosec // лимит проверен в config
	if poolCfg.MinConns > poolCfg.MaxConns {
		poolCfg.MinConns = poolCfg.MaxConns
	}
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("host", cfg.Host),
		logger.NewField("port", cfg.Port),
		logger.NewField("db", cfg.DBName),
		logger.NewField("max_conns", poolCfg.MaxConns),
	)

	err = readiness.UntilReady(ctx, dbLog, "postgres", pool.Ping)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return pool, nil
}

// DSN собирает URL подключения; логин и пароль экранируются.
func DSN(cfg *config.Database) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
