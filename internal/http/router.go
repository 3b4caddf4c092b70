package router

import (
	"net/http"
	"task-manager/internal/http/handlers"
	"task-manager/internal/http/middleware"

	"github.com/gorilla/mux"
)

func New(handler *handlers.TaskHandler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/tasks", handler.List).Methods(http.MethodGet)
	r.HandleFunc("/tasks", handler.Create).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{taskId}", handler.Complete).Methods(http.MethodPatch)

	// CORS wraps the router so preflights are answered before method matching.
	// The access log sits outside both so preflights and unmatched routes are logged.
	return middleware.RequestID(middleware.AccessLog(middleware.EnableCORS(r)))
}
