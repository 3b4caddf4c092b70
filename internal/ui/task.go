package ui

import (
	"encoding/json"
	"task-manager/internal/domain"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DetailKind selects which annotation a new task gets.
type DetailKind string

const (
	DetailDueDate  DetailKind = "dueDate"
	DetailPriority DetailKind = "priority"
)

// EnhancedTask is a task as the page shows it: the stored fields plus
// either a due date or a priority. The annotation lives only on this side.
type EnhancedTask struct {
	ID        int64
	Title     string
	Completed bool

	DueDate  *string
	Priority *Priority
}

func (t EnhancedTask) HasDueDate() bool {
	return t.DueDate != nil
}

// Detail is the text of the Details column.
func (t EnhancedTask) Detail() string {
	if t.HasDueDate() {
		return "Due: " + *t.DueDate
	}
	var p Priority
	if t.Priority != nil {
		p = *t.Priority
	}
	return "Priority: " + string(p)
}

// FilterTasks returns the tasks for which keep reports true.
func FilterTasks[T any](tasks []T, keep func(T) bool) []T {
	out := make([]T, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// fromFetched drops whatever annotation the store kept and marks the task
// medium priority.
func fromFetched(t domain.Task) EnhancedTask {
	p := PriorityMedium
	return EnhancedTask{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  &p,
	}
}

// fromEcho reads the annotation back out of the store's reply to a create.
func fromEcho(t domain.Task) EnhancedTask {
	out := EnhancedTask{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
	}

	var s string
	if raw, ok := t.Extra["dueDate"]; ok && json.Unmarshal(raw, &s) == nil {
		due := s
		out.DueDate = &due
	}
	if raw, ok := t.Extra["priority"]; ok && json.Unmarshal(raw, &s) == nil {
		p := Priority(s)
		out.Priority = &p
	}
	return out
}

func toTask(t EnhancedTask) domain.Task {
	out := domain.Task{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
	}

	switch {
	case t.DueDate != nil:
		out.Extra = map[string]json.RawMessage{"dueDate": jsonString(*t.DueDate)}
	case t.Priority != nil:
		out.Extra = map[string]json.RawMessage{"priority": jsonString(string(*t.Priority))}
	}
	return out
}

func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
