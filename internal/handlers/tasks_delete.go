package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middlewares"
	"github.com/taskhive/taskhive/internal/repositories"
	"github.com/taskhive/taskhive/internal/services"
)

// TaskDeleter defines the interface that the task deletion service must implement.
type TaskDeleter interface {
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

// NewTasksDeleteHandler returns an HTTP handler deleting an owned task by id.
// The task_id field may arrive in the query string or the form body.
// @Summary Delete a task
// @Description Deletes one task of the authenticated user by id.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param task_id query string true "Task id"
// @Success 204 "Task deleted"
// @Failure 401 "Missing or invalid token"
// @Failure 403 {object} handlers.TaskErrorResponse "Task owned by another user"
// @Failure 404 {object} handlers.TaskErrorResponse "Task does not exist"
// @Router /tasks [delete]
func NewTasksDeleteHandler(svc TaskDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(TaskErrorResponse{
				Error: "invalid form data",
			})
			return
		}

		taskID, err := uuid.Parse(r.FormValue("task_id"))
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(TaskErrorResponse{
				Error: "invalid task id",
			})
			return
		}

		if err := svc.Delete(r.Context(), user.ID, taskID); err != nil {
			switch {
			case errors.Is(err, repositories.ErrTaskNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TaskErrorResponse{
					Error: fmt.Sprintf("Task with id %s does not exist", taskID),
				})
			case errors.Is(err, services.ErrForbidden):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(TaskErrorResponse{
					Error: "You don't have permission to delete this task.",
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

		w.WriteHeader(http.StatusNoContent)
	}
}
