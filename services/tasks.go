package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/biosecret/voice-todo/common"
	"github.com/biosecret/voice-todo/logging"
	"github.com/biosecret/voice-todo/models"
	"github.com/biosecret/voice-todo/notify"
	"github.com/biosecret/voice-todo/store"
	"github.com/biosecret/voice-todo/utils"
)

// TaskService runs task CRUD on behalf of an authenticated caller. Tasks are
// scoped to their owner unless the service runs in shared mode, where every
// caller sees and mutates every task.
type TaskService struct {
	tasks     store.TaskStore
	publisher notify.Publisher
	logger    logging.Logger
	shared    bool
	now       func() time.Time
}

func NewTaskService(tasks store.TaskStore, publisher notify.Publisher, logger logging.Logger, shared bool) *TaskService {
	if publisher == nil {
		publisher = notify.Noop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &TaskService{
		tasks:     tasks,
		publisher: publisher,
		logger:    logger.With("component", "tasks"),
		shared:    shared,
		now:       time.Now,
	}
}

func (s *TaskService) List(ctx context.Context, callerID string) ([]models.Task, error) {
	owner := callerID
	if s.shared {
		owner = ""
	}

	tasks, err := s.tasks.FindAll(ctx, owner)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, callerID, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", common.ErrInvalidInput)
	}

	task := &models.Task{
		ID:        utils.GenerateRandomID(),
		Text:      text,
		Completed: false,
		OwnerID:   callerID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, storeError("insert task", err)
	}

	s.publish(ctx, notify.TaskCreated, *task)
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, callerID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrInvalidInput)
	}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: text must not be empty", common.ErrInvalidInput)
		}
		patch.Text = &text
	}

	if _, err := s.owned(ctx, callerID, taskID); err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateByID(ctx, taskID, patch)
	if err != nil {
		return nil, storeError("update task", err)
	}

	s.publish(ctx, notify.TaskUpdated, *task)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, callerID, taskID string) error {
	task, err := s.owned(ctx, callerID, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.DeleteByID(ctx, taskID); err != nil {
		return storeError("delete task", err)
	}

	s.publish(ctx, notify.TaskDeleted, *task)
	return nil
}

// owned loads taskID and hides tasks the caller may not touch behind NotFound.
func (s *TaskService) owned(ctx context.Context, callerID, taskID string) (*models.Task, error) {
	if !utils.ValidID(taskID) {
		return nil, common.ErrNotFound
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, storeError("find task", err)
	}
	if !s.shared && task.OwnerID != callerID {
		return nil, common.ErrNotFound
	}
	return task, nil
}

func (s *TaskService) publish(ctx context.Context, typ notify.EventType, task models.Task) {
	ev := notify.Event{Type: typ, Task: task, At: s.now().UTC()}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn(ctx, "publish task event", "type", string(typ), "task_id", task.ID, "error", err)
	}
}

func storeError(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", common.ErrStoreUnavailable, op, err)
}
