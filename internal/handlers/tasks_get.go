package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middlewares"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/repositories"
	"github.com/taskhive/taskhive/internal/services"
)

// TaskGetter defines the interface that the single-task read service must implement.
type TaskGetter interface {
	Get(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
}

// NewTasksGetHandler returns an HTTP handler serving a single task by id.
// @Summary Get a task
// @Description Returns one task of the authenticated user by id.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskID path string true "Task id"
// @Success 200 {object} models.Task "Task"
// @Failure 401 "Missing or invalid token"
// @Failure 403 {object} handlers.TaskErrorResponse "Task owned by another user"
// @Failure 404 {object} handlers.TaskErrorResponse "Task does not exist"
// @Router /tasks/{taskID} [get]
func NewTasksGetHandler(svc TaskGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(TaskErrorResponse{
				Error: "invalid task id",
			})
			return
		}

		task, err := svc.Get(r.Context(), user.ID, taskID)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrTaskNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TaskErrorResponse{
					Error: fmt.Sprintf("Task with id %s does not exist", taskID),
				})
			case errors.Is(err, services.ErrForbidden):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(TaskErrorResponse{
					Error: "You don't have permission to view this task.",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TaskErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(task)
	}
}
