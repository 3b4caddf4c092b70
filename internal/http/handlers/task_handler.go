package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"task-manager/internal/domain"
	"task-manager/internal/http/dto"
	"task-manager/internal/logging"
	"task-manager/internal/service"

	"github.com/gorilla/mux"
)

type TaskService interface {
	ListTasks() ([]domain.Task, error)
	CreateTask(task domain.Task) (domain.Task, error)
	CompleteTask(id int64, completed *bool) (domain.Task, error)
}

type TaskHandler struct {
	taskService TaskService
}

func New(taskService TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_LIST_FAILED, Description: %v", err)
		writeError(w, http.StatusInternalServerError, "failed getting tasks")

		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}
	// an empty body is stored as an empty object
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var task domain.Task
	if err := json.Unmarshal(body, &task); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	created, err := h.taskService.CreateTask(task)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_CREATE_FAILED, Description: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")

		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// PATCH /tasks/{taskId}
//
// Both an unknown id and a body without a boolean completed answer 201 with
// an empty object.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	idStr := mux.Vars(r)["taskId"]
	id, idOK := parseTaskID(idStr)

	var completed *bool
	if v, ok := dto.CompletedField(body); ok {
		completed = &v
	}

	if !idOK {
		logging.Logger.Infof("Event ID: TASK_PATCH_IGNORED, Description: task not found or missing \"completed\" info (task %q)", idStr)
		writeJSON(w, http.StatusCreated, dto.EmptyResponse{})

		return
	}

	task, err := h.taskService.CompleteTask(id, completed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrMissingCompleted):
			logging.Logger.Infof("Event ID: TASK_PATCH_IGNORED, Description: task not found or missing \"completed\" info (task %q): %v", idStr, err)
			writeJSON(w, http.StatusCreated, dto.EmptyResponse{})
			return
		default:
			logging.Logger.Errorf("Event ID: TASK_PATCH_FAILED, Description: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, http.StatusCreated, task)
}

// parseTaskID reads the path id as a number. Values that are not integral
// cannot match any stored id.
func parseTaskID(s string) (int64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
