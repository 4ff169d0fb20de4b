package store

import (
	"context"
	"sort"
	"sync"

	"github.com/biosecret/voice-todo/models"
)

// Memory keeps accounts and tasks in process memory. It satisfies
// AccountStore, TaskStore and Pinger.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	byEmail  map[string]string
	tasks    map[string]models.Task
}

func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]models.Account),
		byEmail:  make(map[string]string),
		tasks:    make(map[string]models.Task),
	}
}

func (m *Memory) Ping(context.Context) error { return nil }

// Accounts returns m as an AccountStore.
func (m *Memory) Accounts() AccountStore { return memoryAccounts{m} }

// Tasks returns m as a TaskStore.
func (m *Memory) Tasks() TaskStore { return memoryTasks{m} }

type memoryAccounts struct{ m *Memory }

func (s memoryAccounts) Insert(_ context.Context, account *models.Account) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.byEmail[account.Email]; ok {
		return ErrConflict
	}
	if _, ok := s.m.accounts[account.ID]; ok {
		return ErrConflict
	}
	s.m.accounts[account.ID] = *account
	s.m.byEmail[account.Email] = account.ID
	return nil
}

func (s memoryAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	id, ok := s.m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	a := s.m.accounts[id]
	return &a, nil
}

func (s memoryAccounts) FindByID(_ context.Context, id string) (*models.Account, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	a, ok := s.m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

type memoryTasks struct{ m *Memory }

func (s memoryTasks) FindByID(_ context.Context, id string) (*models.Task, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	t, ok := s.m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s memoryTasks) FindAll(_ context.Context, ownerID string) ([]models.Task, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	tasks := []models.Task{}
	for _, t := range s.m.tasks {
		if ownerID == "" || t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s memoryTasks) Insert(_ context.Context, task *models.Task) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.tasks[task.ID]; ok {
		return ErrConflict
	}
	s.m.tasks[task.ID] = *task
	return nil
}

func (s memoryTasks) UpdateByID(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	t, ok := s.m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&t)
	s.m.tasks[id] = t
	return &t, nil
}

func (s memoryTasks) DeleteByID(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.tasks, id)
	return nil
}
