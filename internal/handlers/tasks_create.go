package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middlewares"
	"github.com/taskhive/taskhive/internal/models"
)

// TaskCreator defines the interface that the task creation service must implement.
type TaskCreator interface {
	Create(ctx context.Context, create models.TaskCreate) (*models.Task, error)
}

// TaskErrorResponse represents an error response for task endpoints
// swagger:model TaskErrorResponse
type TaskErrorResponse struct {
	// Error message
	// default: Task with id 42 does not exist
	Error string `json:"error"`
}

// NewTasksCreateHandler returns an HTTP handler creating a task owned by
// the caller.
// @Summary Create a task
// @Description Creates a task with an optional description and alert timestamp (format "YYYY-MM-DD HH:MM:SS.mmm").
// @Tags tasks
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Task name"
// @Param description formData string false "Description"
// @Param alert_datetime formData string false "Alert timestamp"
// @Success 201 {object} models.Task "Created task"
// @Failure 401 "Missing or invalid token"
// @Failure 422 {object} handlers.TaskErrorResponse "Missing name or malformed timestamp"
// @Router /tasks [post]
func NewTasksCreateHandler(svc TaskCreator) http.HandlerFunc {
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

		name := r.FormValue("name")
		if name == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(TaskErrorResponse{
				Error: "name is required",
			})
			return
		}

		create := models.TaskCreate{
			Name:        name,
			Description: formValue(r, "description"),
			UserID:      user.ID,
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
			create.AlertDateTime = &alert
		}

		task, err := svc.Create(r.Context(), create)
		if err != nil {
			logger.Log.Errorw("failed to create task", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TaskErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(task)
	}
}
