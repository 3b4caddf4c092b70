package service

import (
	"errors"
	"task-manager/internal/store"
)

var (
	ErrNotFound         = store.ErrNotFound
	ErrMissingCompleted = errors.New("missing boolean completed field")
	ErrStoreNil         = errors.New("task store is nil")
)
