// Package ui is the task manager front end: page state, the operations the
// page offers, and its HTML rendering.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"task-manager/internal/client"
	"task-manager/internal/domain"
	"task-manager/internal/logging"
	"task-manager/internal/workerpool"
)

type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (domain.Task, error)
}

// App holds the state of one page. Request failures are logged and never
// roll state back.
type App struct {
	api  TaskAPI
	jobs workerpool.JobPool

	mu               sync.Mutex
	tasks            []EnhancedTask
	newTaskTitle     string
	additionalDetail DetailKind
	detailValue      string
}

func New(api TaskAPI, jobs workerpool.JobPool) *App {
	return &App{
		api:              api,
		jobs:             jobs,
		tasks:            make([]EnhancedTask, 0),
		additionalDetail: DetailDueDate,
	}
}

// Load replaces the task list with the store's, marking every task medium
// priority.
func (a *App) Load(ctx context.Context) {
	fetched, err := a.api.ListTasks(ctx)
	if err != nil {
		logging.Logger.Errorf("Event ID: UI_FETCH_FAILED, Description: Error fetching tasks: %v", err)
		return
	}

	tasks := make([]EnhancedTask, 0, len(fetched))
	for _, t := range fetched {
		tasks = append(tasks, fromFetched(t))
	}

	a.mu.Lock()
	a.tasks = tasks
	a.mu.Unlock()
}

func (a *App) SetTitle(title string) {
	a.mu.Lock()
	a.newTaskTitle = title
	a.mu.Unlock()
}

func (a *App) SetAdditionalDetail(kind DetailKind) {
	a.mu.Lock()
	a.additionalDetail = kind
	a.mu.Unlock()
}

func (a *App) SetDetailValue(value string) {
	a.mu.Lock()
	a.detailValue = value
	a.mu.Unlock()
}

// AddTask posts the form as a new task and appends the store's echo. The
// id is the current list length plus one. The form is cleared whether or
// not the request succeeds.
func (a *App) AddTask(ctx context.Context) {
	a.mu.Lock()
	if strings.TrimSpace(a.newTaskTitle) == "" {
		a.mu.Unlock()
		return
	}

	task := EnhancedTask{
		ID:        int64(len(a.tasks) + 1),
		Title:     a.newTaskTitle,
		Completed: false,
	}
	value := a.detailValue
	if a.additionalDetail == DetailDueDate {
		task.DueDate = &value
	} else {
		p := Priority(value)
		task.Priority = &p
	}
	a.mu.Unlock()

	created, err := a.api.CreateTask(ctx, toTask(task))

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		logging.Logger.Errorf("Event ID: UI_CREATE_FAILED, Description: Error adding task: %v", err)
	} else {
		a.tasks = append(a.tasks, fromEcho(created))
	}
	a.newTaskTitle = ""
	a.detailValue = ""
}

// ToggleComplete flips the task locally at once and sends the new value to
// the store in the background. The flip is kept even if the send fails.
func (a *App) ToggleComplete(id int64) {
	a.mu.Lock()
	completed := true
	seen := false
	for i := range a.tasks {
		if a.tasks[i].ID != id {
			continue
		}
		if !seen {
			completed = !a.tasks[i].Completed
			seen = true
		}
		a.tasks[i].Completed = !a.tasks[i].Completed
	}
	a.mu.Unlock()

	err := a.jobs.Enqueue(func(ctx context.Context) error {
		_, err := a.api.SetCompleted(ctx, id, completed)
		if errors.Is(err, client.ErrNotApplied) {
			logging.Logger.Debugf("Event ID: UI_TOGGLE_IGNORED, Description: store did not apply completed=%v to task %d", completed, id)
			return nil
		}
		if err != nil {
			return fmt.Errorf("toggle task %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: UI_TOGGLE_FAILED, Description: Error toggling task complete: %v", err)
	}
}

// State is a snapshot of the page.
type State struct {
	Tasks            []EnhancedTask
	NewTaskTitle     string
	AdditionalDetail DetailKind
	DetailValue      string
}

func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	tasks := make([]EnhancedTask, len(a.tasks))
	copy(tasks, a.tasks)

	return State{
		Tasks:            tasks,
		NewTaskTitle:     a.newTaskTitle,
		AdditionalDetail: a.additionalDetail,
		DetailValue:      a.detailValue,
	}
}

func (s State) Incomplete() []EnhancedTask {
	return FilterTasks(s.Tasks, func(t EnhancedTask) bool { return !t.Completed })
}

func (s State) DueDateSelected() bool {
	return s.AdditionalDetail == DetailDueDate
}

func (s State) DetailPlaceholder() string {
	if s.DueDateSelected() {
		return "Enter due date"
	}
	return "Enter priority (low, medium, high)"
}
