package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive/internal/middlewares"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/repositories"
	"github.com/taskhive/taskhive/internal/services"
)

func TestTasksUpdateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	user := &models.User{ID: userID, Username: "john"}
	taskID := uuid.New()

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	putForm := func(form url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req.WithContext(middlewares.SetUserToContext(req.Context(), user))
	}

	t.Run("mark done", func(t *testing.T) {
		updated := &models.Task{ID: taskID, Name: "buy milk", Done: true, UserID: userID}

		mockSvc := NewMockTaskUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), userID, taskID, models.TaskUpdate{Done: boolPtr(true)}).
			Return(updated, nil)

		handler := NewTasksUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, putForm(url.Values{"task_id": {taskID.String()}, "done": {"true"}}))

		assert.Equal(t, 200, rr.Code)

		var resp map[string]any
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, true, resp["done"])
	})

	t.Run("rename", func(t *testing.T) {
		updated := &models.Task{ID: taskID, Name: "buy bread", UserID: userID}

		mockSvc := NewMockTaskUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), userID, taskID, models.TaskUpdate{Name: strPtr("buy bread")}).
			Return(updated, nil)

		handler := NewTasksUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, putForm(url.Values{"task_id": {taskID.String()}, "name": {"buy bread"}}))

		assert.Equal(t, 200, rr.Code)
		assert.Contains(t, rr.Body.String(), "buy bread")
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := NewMockTaskUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), userID, taskID, gomock.Any()).
			Return(nil, repositories.ErrTaskNotFound)

		handler := NewTasksUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, putForm(url.Values{"task_id": {taskID.String()}, "done": {"true"}}))

		assert.Equal(t, 404, rr.Code)
		assert.Contains(t, rr.Body.String(), fmt.Sprintf("Task with id %s does not exist", taskID))
	})

	t.Run("another user's task", func(t *testing.T) {
		mockSvc := NewMockTaskUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), userID, taskID, gomock.Any()).
			Return(nil, services.ErrForbidden)

		handler := NewTasksUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, putForm(url.Values{"task_id": {taskID.String()}, "done": {"true"}}))

		assert.Equal(t, 403, rr.Code)
		assert.Contains(t, rr.Body.String(), "You don't have permission to edit this task.")
	})

	t.Run("malformed task id", func(t *testing.T) {
		handler := NewTasksUpdateHandler(NewMockTaskUpdater(ctrl))

		rr := httptest.NewRecorder()
		handler(rr, putForm(url.Values{"task_id": {"not-a-uuid"}}))

		assert.Equal(t, 422, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid task id")
	})

	t.Run("malformed done flag", func(t *testing.T) {
		handler := NewTasksUpdateHandler(NewMockTaskUpdater(ctrl))

		rr := httptest.NewRecorder()
		handler(rr, putForm(url.Values{"task_id": {taskID.String()}, "done": {"maybe"}}))

		assert.Equal(t, 422, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid done flag")
	})

	t.Run("malformed alert timestamp", func(t *testing.T) {
		handler := NewTasksUpdateHandler(NewMockTaskUpdater(ctrl))

		rr := httptest.NewRecorder()
		handler(rr, putForm(url.Values{"task_id": {taskID.String()}, "alert_datetime": {"later"}}))

		assert.Equal(t, 422, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid datetime")
	})
}
