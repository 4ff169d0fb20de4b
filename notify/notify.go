// Package notify publishes task change events for external consumers.
package notify

import (
	"context"
	"time"

	"github.com/biosecret/voice-todo/models"
)

type EventType string

const (
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"
)

// Event describes one change to a task.
type Event struct {
	Type EventType   `json:"type"`
	Task models.Task `json:"task"`
	At   time.Time   `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close()
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() {}
