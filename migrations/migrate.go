package migrations

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер "pgx" для database/sql
	"github.com/pressly/goose/v3"
)

// Command одна из goose.UpContext, DownContext, StatusContext.
type Command func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error

// Run выполняет goose-команду над встроенными миграциями.
func Run(ctx context.Context, dsn string, command Command) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return command(ctx, db, ".")
}
