package memory

import (
	"errors"
	"sync"
	"task-manager/internal/domain"
	"task-manager/internal/store"
)

var (
	ErrNotInitialized = errors.New("task store not initialized")
	ErrNotFound       = store.ErrNotFound
)

type TaskStore struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

func New() *TaskStore {
	return &TaskStore{
		tasks: make([]domain.Task, 0),
	}
}

func (ts *TaskStore) Append(task domain.Task) (domain.Task, error) {
	if ts == nil {
		return domain.Task{}, ErrNotInitialized
	}

	// the stored copy must not alias the caller's members
	task = task.Clone()

	ts.mu.Lock()
	ts.tasks = append(ts.tasks, task)
	ts.mu.Unlock()

	return task.Clone(), nil
}

func (ts *TaskStore) List() ([]domain.Task, error) {
	if ts == nil {
		return nil, ErrNotInitialized
	}

	ts.mu.RLock()
	defer ts.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(ts.tasks))
	for _, t := range ts.tasks {
		tasks = append(tasks, t.Clone())
	}

	return tasks, nil
}

func (ts *TaskStore) SetCompleted(id int64, completed bool) (domain.Task, error) {
	if ts == nil {
		return domain.Task{}, ErrNotInitialized
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	for i := range ts.tasks {
		if !ts.tasks[i].HasID(id) {
			continue
		}
		ts.tasks[i].SetCompleted(completed)
		return ts.tasks[i].Clone(), nil
	}

	return domain.Task{}, ErrNotFound
}

var _ store.TaskStore = (*TaskStore)(nil)
