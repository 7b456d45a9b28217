package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/taskboard/taskboard-be/internal/identity"
	"github.com/taskboard/taskboard-be/internal/services"
	"github.com/taskboard/taskboard-be/internal/validation"
)

// TaskHandler handles HTTP requests for task management.
type TaskHandler struct {
	service  services.TaskServiceProvider
	resolver identity.Resolver
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider, resolver identity.Resolver) *TaskHandler {
	return &TaskHandler{service: service, resolver: resolver}
}

// GetAll handles listing every task, newest first. A store failure surfaces
// as 404 with the legacy payload, not as a server error.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tasks")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"noTasksfound": "No Tasks found"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// GetForUser handles retrieving the acting user's task, with the owner's
// name and avatar resolved.
func (h *TaskHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.resolver.Resolve(r)
	if !ok {
		http.Error(w, "Could not resolve acting user", http.StatusUnauthorized)
		return
	}

	task, err := h.service.GetTaskForUser(ident.UserID)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if errors.Is(err, services.ErrNoTaskForUser) {
			json.NewEncoder(w).Encode(map[string]string{"notaskfound": "There is no task for this user"})
			return
		}
		log.Error().Err(err).Str("user_id", ident.UserID).Msg("Failed to get task for user")
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// Get handles retrieving a task by its ID. No ownership check is applied:
// any caller who can reach this route can read any task by id.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, err := h.service.GetTaskByID(id)
	if err != nil {
		log.Warn().Err(err).Str("task_id", id).Msg("Failed to get task by ID")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"noTaskfound": "No Task found with that ID"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// Create handles creating a task owned by the acting user.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input validation.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if errs, ok := validation.ValidateTask(input); !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs)
		return
	}

	ident, ok := h.resolver.Resolve(r)
	if !ok {
		http.Error(w, "Could not resolve acting user", http.StatusUnauthorized)
		return
	}

	task, err := h.service.CreateTask(ident.UserID, input.Title, input.Description, input.Deadline)
	if err != nil {
		log.Error().Err(err).Str("user_id", ident.UserID).Msg("Failed to create task")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// Delete handles deleting a task. The by-id lookup alone drives the
// 404 / 401 / delete branch.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ident, ok := h.resolver.Resolve(r)
	if !ok {
		http.Error(w, "Could not resolve acting user", http.StatusUnauthorized)
		return
	}

	err := h.service.DeleteTask(id, ident.UserID)
	switch {
	case errors.Is(err, services.ErrNotTaskOwner):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"notauthorized": "User not authorized"})
	case err != nil:
		log.Warn().Err(err).Str("task_id", id).Msg("Failed to delete task")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"Tasknotfound": "No Task found"})
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}
