package store

import (
	"errors"
	"task-manager/internal/domain"
)

var ErrNotFound = errors.New("task not found")

// TaskStore keeps tasks in insertion order. Ids are not unique; lookups
// act on the first task carrying the id.
type TaskStore interface {
	List() ([]domain.Task, error)
	Append(t domain.Task) (domain.Task, error)
	SetCompleted(id int64, completed bool) (domain.Task, error)
}
