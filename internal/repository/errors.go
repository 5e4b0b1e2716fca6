package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrUniqueViolation     = "23505"
	PgErrForeignKeyViolation = "23503"
	PgErrCheckViolation      = "23514"
)

// Codes доменная ошибка на каждый SQLSTATE, который репозиторий ожидает от запроса.
type Codes map[string]error

// Translate переводит нарушение ограничения в доменную ошибку, остальные ошибки
// оборачивает с op. Имя ограничения сохраняется в тексте для диагностики.
func Translate(err error, op string, codes Codes) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if domainErr, ok := codes[pgErr.Code]; ok {
			return fmt.Errorf("%w (constraint %s)", domainErr, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("unexpected %s error: %w", op, err)
}
