package ui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"task-manager/internal/client"
	"task-manager/internal/domain"
	"task-manager/internal/workerpool"
)

// --- fakes ---

type patchCall struct {
	id        int64
	completed bool
}

type fakeAPI struct {
	listFn         func() ([]domain.Task, error)
	createFn       func(domain.Task) (domain.Task, error)
	setCompletedFn func(int64, bool) (domain.Task, error)

	created []domain.Task
	patches []patchCall
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		listFn:   func() ([]domain.Task, error) { return nil, nil },
		createFn: func(t domain.Task) (domain.Task, error) { return t, nil },
		setCompletedFn: func(id int64, completed bool) (domain.Task, error) {
			return domain.Task{ID: id, Completed: completed}, nil
		},
	}
}

func (f *fakeAPI) ListTasks(context.Context) ([]domain.Task, error) {
	return f.listFn()
}

func (f *fakeAPI) CreateTask(_ context.Context, t domain.Task) (domain.Task, error) {
	f.created = append(f.created, t)
	return f.createFn(t)
}

func (f *fakeAPI) SetCompleted(_ context.Context, id int64, completed bool) (domain.Task, error) {
	f.patches = append(f.patches, patchCall{id: id, completed: completed})
	return f.setCompletedFn(id, completed)
}

// inlinePool runs each job during Enqueue.
type inlinePool struct {
	enqueueErr error
	jobErrs    []error
}

func (p *inlinePool) Enqueue(job workerpool.Job) error {
	if p.enqueueErr != nil {
		return p.enqueueErr
	}
	if err := job(context.Background()); err != nil {
		p.jobErrs = append(p.jobErrs, err)
	}
	return nil
}

func loaded(t *testing.T, api *fakeAPI, pool *inlinePool, tasks ...domain.Task) *App {
	t.Helper()

	api.listFn = func() ([]domain.Task, error) { return tasks, nil }
	app := New(api, pool)
	app.Load(context.Background())
	return app
}

// --- tests ---

func TestLoad_MarksEveryTaskMediumPriority(t *testing.T) {
	api := newFakeAPI()
	app := loaded(t, api, &inlinePool{},
		domain.Task{ID: 1, Title: "Buy milk"},
		domain.Task{ID: 2, Title: "Pay rent", Extra: map[string]json.RawMessage{"dueDate": json.RawMessage(`"friday"`)}},
	)

	s := app.State()
	if len(s.Tasks) != 2 {
		t.Fatalf("len=%d, want 2", len(s.Tasks))
	}
	for _, task := range s.Tasks {
		if task.HasDueDate() {
			t.Fatalf("task %d has due date after load, want none", task.ID)
		}
		if got := task.Detail(); got != "Priority: medium" {
			t.Fatalf("task %d Detail()=%q, want %q", task.ID, got, "Priority: medium")
		}
	}
}

func TestLoad_FailureKeepsState(t *testing.T) {
	api := newFakeAPI()
	app := loaded(t, api, &inlinePool{}, domain.Task{ID: 1, Title: "a"})

	api.listFn = func() ([]domain.Task, error) { return nil, errors.New("connection refused") }
	app.Load(context.Background())

	if got := len(app.State().Tasks); got != 1 {
		t.Fatalf("len=%d, want 1", got)
	}
}

func TestAddTask_BlankTitleIsNoop(t *testing.T) {
	api := newFakeAPI()
	app := New(api, &inlinePool{})

	app.SetTitle("   ")
	app.SetDetailValue("friday")
	app.AddTask(context.Background())

	if len(api.created) != 0 {
		t.Fatalf("CreateTask called %d times, want 0", len(api.created))
	}
	if got := app.State().DetailValue; got != "friday" {
		t.Fatalf("DetailValue=%q, want unchanged", got)
	}
}

func TestAddTask_WithDueDate(t *testing.T) {
	api := newFakeAPI()
	app := loaded(t, api, &inlinePool{}, domain.Task{ID: 1, Title: "a"})

	app.SetTitle("Pay rent")
	app.SetAdditionalDetail(DetailDueDate)
	app.SetDetailValue("2024-05-01")
	app.AddTask(context.Background())

	if len(api.created) != 1 {
		t.Fatalf("CreateTask called %d times, want 1", len(api.created))
	}
	sent := api.created[0]
	if sent.ID != 2 || sent.Title != "Pay rent" || sent.Completed {
		t.Fatalf("sent=%+v, want id=2 title=Pay rent completed=false", sent)
	}
	if string(sent.Extra["dueDate"]) != `"2024-05-01"` {
		t.Fatalf("sent dueDate=%s, want %q", sent.Extra["dueDate"], `"2024-05-01"`)
	}

	s := app.State()
	if len(s.Tasks) != 2 {
		t.Fatalf("len=%d, want 2", len(s.Tasks))
	}
	if got := s.Tasks[1].Detail(); got != "Due: 2024-05-01" {
		t.Fatalf("Detail()=%q, want %q", got, "Due: 2024-05-01")
	}
	if s.NewTaskTitle != "" || s.DetailValue != "" {
		t.Fatalf("form not cleared: %+v", s)
	}
}

func TestAddTask_WithPriority(t *testing.T) {
	api := newFakeAPI()
	app := New(api, &inlinePool{})

	app.SetTitle("Walk dog")
	app.SetAdditionalDetail(DetailPriority)
	app.SetDetailValue("high")
	app.AddTask(context.Background())

	s := app.State()
	if len(s.Tasks) != 1 {
		t.Fatalf("len=%d, want 1", len(s.Tasks))
	}
	if s.Tasks[0].ID != 1 {
		t.Fatalf("id=%d, want 1", s.Tasks[0].ID)
	}
	if got := s.Tasks[0].Detail(); got != "Priority: high" {
		t.Fatalf("Detail()=%q, want %q", got, "Priority: high")
	}
	if s.AdditionalDetail != DetailPriority {
		t.Fatalf("AdditionalDetail=%q, want kept", s.AdditionalDetail)
	}
}

func TestAddTask_AppendsServerEcho(t *testing.T) {
	api := newFakeAPI()
	api.createFn = func(t domain.Task) (domain.Task, error) {
		// a store that drops the annotation
		return domain.Task{ID: t.ID, Title: t.Title}, nil
	}
	app := New(api, &inlinePool{})

	app.SetTitle("Pay rent")
	app.SetDetailValue("friday")
	app.AddTask(context.Background())

	task := app.State().Tasks[0]
	if task.HasDueDate() || task.Priority != nil {
		t.Fatalf("task=%+v, want echo without annotation", task)
	}
}

func TestAddTask_FailureAppendsNothingButClearsForm(t *testing.T) {
	api := newFakeAPI()
	api.createFn = func(domain.Task) (domain.Task, error) { return domain.Task{}, errors.New("connection refused") }
	app := New(api, &inlinePool{})

	app.SetTitle("Pay rent")
	app.SetDetailValue("friday")
	app.AddTask(context.Background())

	s := app.State()
	if len(s.Tasks) != 0 {
		t.Fatalf("len=%d, want 0", len(s.Tasks))
	}
	if s.NewTaskTitle != "" || s.DetailValue != "" {
		t.Fatalf("form not cleared: %+v", s)
	}
}

func TestAddTask_IDCollidesWithExisting(t *testing.T) {
	api := newFakeAPI()
	// ids 5 and 2 loaded, so the next id is len+1 = 3 regardless of content
	app := loaded(t, api, &inlinePool{}, domain.Task{ID: 5}, domain.Task{ID: 2})

	app.SetTitle("x")
	app.AddTask(context.Background())

	if api.created[0].ID != 3 {
		t.Fatalf("id=%d, want 3", api.created[0].ID)
	}
}

func TestToggleComplete_OptimisticAndSendsNewValue(t *testing.T) {
	api := newFakeAPI()
	pool := &inlinePool{}
	app := loaded(t, api, pool, domain.Task{ID: 1, Title: "a"}, domain.Task{ID: 2, Title: "b"})

	app.ToggleComplete(1)

	s := app.State()
	if !s.Tasks[0].Completed || s.Tasks[1].Completed {
		t.Fatalf("tasks=%+v, want only task 1 completed", s.Tasks)
	}
	if len(api.patches) != 1 || api.patches[0] != (patchCall{id: 1, completed: true}) {
		t.Fatalf("patches=%+v, want [{1 true}]", api.patches)
	}

	app.ToggleComplete(1)
	if app.State().Tasks[0].Completed {
		t.Fatalf("task 1 completed after second toggle, want false")
	}
	if api.patches[1] != (patchCall{id: 1, completed: false}) {
		t.Fatalf("second patch=%+v, want {1 false}", api.patches[1])
	}
}

func TestToggleComplete_FailureKeepsFlip(t *testing.T) {
	api := newFakeAPI()
	api.setCompletedFn = func(int64, bool) (domain.Task, error) { return domain.Task{}, errors.New("connection refused") }
	pool := &inlinePool{}
	app := loaded(t, api, pool, domain.Task{ID: 1, Title: "a"})

	app.ToggleComplete(1)

	if !app.State().Tasks[0].Completed {
		t.Fatalf("optimistic flip reverted, want kept")
	}
	if len(pool.jobErrs) != 1 {
		t.Fatalf("job errors=%d, want 1", len(pool.jobErrs))
	}
}

func TestToggleComplete_NotAppliedIsNotAnError(t *testing.T) {
	api := newFakeAPI()
	api.setCompletedFn = func(int64, bool) (domain.Task, error) { return domain.Task{}, client.ErrNotApplied }
	pool := &inlinePool{}
	app := loaded(t, api, pool, domain.Task{ID: 1, Title: "a"})

	app.ToggleComplete(1)

	if len(pool.jobErrs) != 0 {
		t.Fatalf("job errors=%v, want none", pool.jobErrs)
	}
}

func TestToggleComplete_PoolFullKeepsFlip(t *testing.T) {
	api := newFakeAPI()
	pool := &inlinePool{enqueueErr: workerpool.ErrPoolFull}
	app := loaded(t, api, pool, domain.Task{ID: 1, Title: "a"})

	app.ToggleComplete(1)

	if !app.State().Tasks[0].Completed {
		t.Fatalf("optimistic flip reverted, want kept")
	}
	if len(api.patches) != 0 {
		t.Fatalf("patches=%d, want 0", len(api.patches))
	}
}

func TestToggleComplete_UnknownIDSendsTrue(t *testing.T) {
	api := newFakeAPI()
	app := New(api, &inlinePool{})

	app.ToggleComplete(42)

	if len(api.patches) != 1 || api.patches[0] != (patchCall{id: 42, completed: true}) {
		t.Fatalf("patches=%+v, want [{42 true}]", api.patches)
	}
}

func TestToggleComplete_DuplicateIDsAllFlip(t *testing.T) {
	api := newFakeAPI()
	app := loaded(t, api, &inlinePool{},
		domain.Task{ID: 1, Title: "a"},
		domain.Task{ID: 1, Title: "b", Completed: true},
	)

	app.ToggleComplete(1)

	s := app.State()
	if !s.Tasks[0].Completed || s.Tasks[1].Completed {
		t.Fatalf("tasks=%+v, want each duplicate flipped", s.Tasks)
	}
	if api.patches[0].completed != true {
		t.Fatalf("patch completed=%v, want value from first match", api.patches[0].completed)
	}
}

func TestState_Incomplete(t *testing.T) {
	api := newFakeAPI()
	app := loaded(t, api, &inlinePool{},
		domain.Task{ID: 1, Title: "a"},
		domain.Task{ID: 2, Title: "b", Completed: true},
		domain.Task{ID: 3, Title: "c"},
	)

	inc := app.State().Incomplete()
	if len(inc) != 2 || inc[0].Title != "a" || inc[1].Title != "c" {
		t.Fatalf("Incomplete()=%+v, want a and c", inc)
	}
}

func TestState_DetailPlaceholder(t *testing.T) {
	app := New(newFakeAPI(), &inlinePool{})

	if got := app.State().DetailPlaceholder(); got != "Enter due date" {
		t.Fatalf("placeholder=%q, want due date prompt", got)
	}

	app.SetAdditionalDetail(DetailPriority)
	if got := app.State().DetailPlaceholder(); got != "Enter priority (low, medium, high)" {
		t.Fatalf("placeholder=%q, want priority prompt", got)
	}
}
