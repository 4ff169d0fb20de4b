// Package store defines the persistence boundary for accounts and tasks and
// ships an in-memory and a PostgreSQL implementation of it.
package store

import (
	"context"
	"errors"

	"github.com/biosecret/voice-todo/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type AccountStore interface {
	Insert(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

type TaskStore interface {
	FindByID(ctx context.Context, id string) (*models.Task, error)
	// FindAll returns the tasks of ownerID oldest first; an empty ownerID
	// returns every task.
	FindAll(ctx context.Context, ownerID string) ([]models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteByID(ctx context.Context, id string) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
