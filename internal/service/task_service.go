package service

import (
	"fmt"
	"task-manager/internal/domain"
	"task-manager/internal/store"
)

type TaskStore = store.TaskStore

type TaskService struct {
	store TaskStore
}

func New(store TaskStore) (*TaskService, error) {
	if store == nil {
		return nil, ErrStoreNil
	}

	return &TaskService{store: store}, nil
}

func (s *TaskService) ListTasks() ([]domain.Task, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask stores the task as given. A decoded task keeps every member it
// was posted with, so the stored record marshals back to the same object. The
// id comes from the caller and nothing is validated.
func (s *TaskService) CreateTask(task domain.Task) (domain.Task, error) {
	created, err := s.store.Append(task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// CompleteTask sets the completed flag of the first task with the given id.
// A nil completed means the request carried no boolean completed field.
func (s *TaskService) CompleteTask(id int64, completed *bool) (domain.Task, error) {
	if completed == nil {
		return domain.Task{}, ErrMissingCompleted
	}

	task, err := s.store.SetCompleted(id, *completed)
	if err != nil {
		return domain.Task{}, fmt.Errorf("complete task %d: %w", id, err)
	}
	return task, nil
}
