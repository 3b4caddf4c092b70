package ui

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"task-manager/internal/http/middleware"
	"task-manager/internal/logging"
)

type Handler struct {
	app *App
}

func NewRouter(app *App) http.Handler {
	h := &Handler{app: app}
	r := mux.NewRouter()

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/tasks", h.AddTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{taskId}/toggle", h.Toggle).Methods(http.MethodPost)
	r.HandleFunc("/detail", h.SetDetail).Methods(http.MethodPost)
	r.HandleFunc("/reload", h.Reload).Methods(http.MethodGet)

	return middleware.RequestID(middleware.AccessLog(r))
}

// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := Render(&buf, h.app.State()); err != nil {
		logging.Logger.Errorf("Event ID: UI_RENDER_FAILED, Description: %v", err)
		http.Error(w, "failed rendering page", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// POST /tasks
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	if !h.readForm(w, r) {
		return
	}

	h.app.AddTask(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// POST /detail
func (h *Handler) SetDetail(w http.ResponseWriter, r *http.Request) {
	if !h.readForm(w, r) {
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// POST /tasks/{taskId}/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["taskId"], 10, 64)
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)

		return
	}

	h.app.ToggleComplete(id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GET /reload
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.app.Load(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// readForm copies the form inputs into page state.
func (h *Handler) readForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)

		return false
	}

	h.app.SetTitle(r.PostFormValue("title"))
	h.app.SetDetailValue(r.PostFormValue("detailValue"))
	if kind := DetailKind(r.PostFormValue("detailKind")); kind == DetailDueDate || kind == DetailPriority {
		h.app.SetAdditionalDetail(kind)
	}
	return true
}
