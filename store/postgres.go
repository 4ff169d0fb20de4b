package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biosecret/voice-todo/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Postgres stores accounts and tasks in PostgreSQL through database/sql and
// the pgx driver. The schema is created by the database package migrations.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Accounts() AccountStore { return postgresAccounts{p.db} }

func (p *Postgres) Tasks() TaskStore { return postgresTasks{p.db} }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type postgresAccounts struct{ db *sql.DB }

func (r postgresAccounts) Insert(ctx context.Context, account *models.Account) error {
	query := `INSERT INTO accounts (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, account.ID, account.Email, account.PasswordHash, account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r postgresAccounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r postgresAccounts) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT id, email, password_hash, created_at FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r postgresAccounts) scanOne(row *sql.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &a, nil
}

type postgresTasks struct{ db *sql.DB }

func (r postgresTasks) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx,
		"SELECT id, text, completed, owner_id, created_at FROM tasks WHERE id = $1", id,
	).Scan(&t.ID, &t.Text, &t.Completed, &t.OwnerID, &t.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}
	return &t, nil
}

func (r postgresTasks) FindAll(ctx context.Context, ownerID string) ([]models.Task, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if ownerID == "" {
		rows, err = r.db.QueryContext(ctx,
			"SELECT id, text, completed, owner_id, created_at FROM tasks ORDER BY created_at, id",
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT id, text, completed, owner_id, created_at FROM tasks WHERE owner_id = $1 ORDER BY created_at, id",
			ownerID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r postgresTasks) Insert(ctx context.Context, task *models.Task) error {
	query := "INSERT INTO tasks (id, text, completed, owner_id, created_at) VALUES ($1, $2, $3, $4, $5)"

	_, err := r.db.ExecContext(ctx, query, task.ID, task.Text, task.Completed, task.OwnerID, task.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r postgresTasks) UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var text sql.NullString
	if patch.Text != nil {
		text = sql.NullString{String: *patch.Text, Valid: true}
	}
	var completed sql.NullBool
	if patch.Completed != nil {
		completed = sql.NullBool{Bool: *patch.Completed, Valid: true}
	}

	query := `UPDATE tasks SET text = COALESCE($2, text), completed = COALESCE($3, completed)
		WHERE id = $1
		RETURNING id, text, completed, owner_id, created_at`

	var t models.Task
	err := r.db.QueryRowContext(ctx, query, id, text, completed).
		Scan(&t.ID, &t.Text, &t.Completed, &t.OwnerID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &t, nil
}

func (r postgresTasks) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
