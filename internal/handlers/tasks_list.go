package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middlewares"
	"github.com/taskhive/taskhive/internal/models"
)

// TaskLister defines the interface that the task listing service must implement.
type TaskLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
}

// NewTasksListHandler returns an HTTP handler listing the caller's tasks.
// @Summary List tasks
// @Description Returns every task owned by the authenticated user.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Task "Tasks of the caller"
// @Failure 401 "Missing or invalid token"
// @Router /tasks [get]
func NewTasksListHandler(svc TaskLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		tasks, err := svc.List(r.Context(), user.ID)
		if err != nil {
			logger.Log.Errorw("failed to list tasks", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(tasks)
	}
}
