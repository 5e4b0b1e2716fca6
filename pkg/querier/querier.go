package querier

import (
	"context"
	"strconv"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_db_statements_total",
			Help: "SQL statements issued, split by whether they ran inside a transaction",
		},
		[]string{"op", "in_tx"},
	)

	StatementErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_db_statement_errors_total",
			Help: "SQL statements that failed before returning rows",
		},
		[]string{"op"},
	)
)

// Querier выполняет запросы в транзакции из контекста, а без нее - напрямую в пуле.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	executor := q.get(ctx, "exec")
	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		StatementErrorsTotal.WithLabelValues("exec").Inc()
	}
	return tag, err
}

func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	executor := q.get(ctx, "query")
	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		StatementErrorsTotal.WithLabelValues("query").Inc()
	}
	return rows, err
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	executor := q.get(ctx, "query_row")
	return executor.QueryRow(ctx, sql, args...)
}

func (q *Querier) get(ctx context.Context, op string) pgxv5.Tr {
	tr := q.getter.DefaultTrOrDB(ctx, q.pool)
	_, inPool := tr.(*pgxpool.Pool)
	StatementsTotal.WithLabelValues(op, strconv.FormatBool(!inPool)).Inc()
	return tr
}
