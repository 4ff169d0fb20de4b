package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biosecret/voice-todo/database/migrations"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
	"github.com/pressly/goose/v3"
)

// StartPostgreSQL opens a connection pool to uri, checks it and brings the
// schema up to date.
func StartPostgreSQL(ctx context.Context, uri string) (*sql.DB, error) {
	if uri == "" {
		return nil, errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}

	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// ClosePostgreSQL closes db if it was opened.
func ClosePostgreSQL(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
