package integration_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"freight/internal/pkg/config"
	"freight/internal/pkg/postgres"
	"freight/migrations"
	"freight/pkg/logger/zap_adapter"
	"freight/pkg/querier"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const statementTimeout = 5 * time.Second

// таблицы в порядке зависимостей; TRUNCATE ... CASCADE все равно снимет ссылки
var tables = []string{"bol_events", "deposits", "active_missions", "bols", "loads", "driver_stats"}

var (
	suiteOnce    sync.Once
	suiteQuerier *querier.Querier
	suiteErr     error
)

// databaseFromEnv POSTGRES_* задает окружение прогона (go test -tags integration).
func databaseFromEnv() *config.Database {
	return &config.Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		MaxConns: 4,
		MinConns: 1,
	}
}

// GetQuerier один пул на весь прогон; схема накатывается goose при первом обращении.
func GetQuerier(t testing.TB) *querier.Querier {
	t.Helper()

	suiteOnce.Do(func() {
		ctx := context.Background()
		cfg := databaseFromEnv()

		suiteErr = migrations.Run(ctx, postgres.DSN(cfg), goose.UpContext)
		if suiteErr != nil {
			return
		}

		pool, err := postgres.NewConnPool(ctx, zap_adapter.NewFromZap(zap.NewNop()), cfg)
		if err != nil {
			suiteErr = err
			return
		}
		suiteQuerier = querier.New(pool, pgxv5.DefaultCtxGetter)
	})

	require.NoError(t, suiteErr, "integration database unavailable")
	return suiteQuerier
}

// SetupDB сеет данные и регистрирует очистку таблиц после теста.
func SetupDB(t testing.TB, seedSQL string) *querier.Querier {
	t.Helper()

	q := GetQuerier(t)
	t.Cleanup(func() { truncate(t, q) })

	if seedSQL == "" {
		return q
	}

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := q.Exec(ctx, seedSQL)
	require.NoError(t, err, "seed")
	return q
}

func truncate(t testing.TB, q *querier.Querier) {
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := q.Exec(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err, "truncate")
}
