package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middlewares"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/repositories"
	"github.com/taskhive/taskhive/internal/services"
)

// TaskUpdater defines the interface that the task update service must implement.
type TaskUpdater interface {
	Update(ctx context.Context, userID, taskID uuid.UUID, upd models.TaskUpdate) (*models.Task, error)
}

// NewTasksUpdateHandler returns an HTTP handler partially updating a task.
// Absent fields are left unchanged.
// @Summary Update a task
// @Description Partially updates name, description, alert timestamp and done flag of an owned task.
// @Tags tasks
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param task_id formData string true "Task id"
// @Param name formData string false "New name"
// @Param description formData string false "New description"
// @Param alert_datetime formData string false "New alert timestamp"
// @Param done formData boolean false "New done flag"
// @Success 200 {object} models.Task "Updated task"
// @Failure 401 "Missing or invalid token"
// @Failure 403 {object} handlers.TaskErrorResponse "Task owned by another user"
// @Failure 404 {object} handlers.TaskErrorResponse "Task does not exist"
// @Failure 422 {object} handlers.TaskErrorResponse "Malformed fields"
// @Router /tasks [put]
func NewTasksUpdateHandler(svc TaskUpdater) http.HandlerFunc {
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

		upd := models.TaskUpdate{
			Name:        formValue(r, "name"),
			Description: formValue(r, "description"),
		}
		if raw := formValue(r, "alert_datetime"); raw != nil {
			alert, err := models.ParseDateTime(*raw)
			if err != nil {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(TaskErrorResponse{
					Error: err.Error(),
				})
				return
			}
			upd.AlertDateTime = &alert
		}
		if raw := formValue(r, "done"); raw != nil {
			done, err := strconv.ParseBool(*raw)
			if err != nil {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(TaskErrorResponse{
					Error: "invalid done flag",
				})
				return
			}
			upd.Done = &done
		}

		task, err := svc.Update(r.Context(), user.ID, taskID, upd)
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
					Error: "You don't have permission to edit this task.",
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
