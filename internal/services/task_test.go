package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/repositories"
	"github.com/taskhive/taskhive/internal/services"
)

func TestTaskService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTaskReader(ctrl)
	mockWriter := services.NewMockTaskWriter(ctrl)

	svc := services.NewTaskService(mockReader, mockWriter, nil)

	userID := uuid.New()
	tasks := []models.Task{
		{ID: uuid.New(), Name: "task one", UserID: userID},
		{ID: uuid.New(), Name: "task two", UserID: userID},
	}

	mockReader.EXPECT().
		ListByUser(gomock.Any(), userID).
		Return(tasks, nil)

	got, err := svc.List(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, tasks, got)
}

func TestTaskService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTaskReader(ctrl)
	mockWriter := services.NewMockTaskWriter(ctrl)

	svc := services.NewTaskService(mockReader, mockWriter, nil)

	userID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name      string
		task      *models.Task
		readerErr error
		wantErr   error
	}{
		{
			name: "owner",
			task: &models.Task{ID: taskID, Name: "buy milk", UserID: userID},
		},
		{
			name:    "another user's task",
			task:    &models.Task{ID: taskID, Name: "buy milk", UserID: uuid.New()},
			wantErr: services.ErrForbidden,
		},
		{
			name:      "not found",
			readerErr: repositories.ErrTaskNotFound,
			wantErr:   repositories.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByID(gomock.Any(), taskID).
				Return(tt.task, tt.readerErr)

			got, err := svc.Get(context.Background(), userID, taskID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.task, got)
			}
		})
	}
}

func TestTaskService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTaskReader(ctrl)
	mockWriter := services.NewMockTaskWriter(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewTaskService(mockReader, mockWriter, mockKafka)

	userID := uuid.New()
	create := models.TaskCreate{Name: "buy milk", UserID: userID}
	stored := &models.Task{ID: uuid.New(), Name: "buy milk", UserID: userID}

	mockWriter.EXPECT().
		Create(gomock.Any(), create).
		Return(stored, nil)
	mockKafka.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			assert.Len(t, msgs, 1)
			assert.Equal(t, stored.ID.String(), string(msgs[0].Key))

			var event models.TaskEvent
			assert.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, models.TaskEventCreated, event.Operation)
			assert.Equal(t, stored.ID.String(), event.TaskID)
			assert.Equal(t, userID.String(), event.UserID)
			return nil
		})

	task, err := svc.Create(context.Background(), create)
	assert.NoError(t, err)
	assert.Equal(t, stored, task)
}

func TestTaskService_Create_WithoutBroker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTaskReader(ctrl)
	mockWriter := services.NewMockTaskWriter(ctrl)

	// Nil writer disables publishing entirely.
	svc := services.NewTaskService(mockReader, mockWriter, nil)

	create := models.TaskCreate{Name: "buy milk", UserID: uuid.New()}
	stored := &models.Task{ID: uuid.New(), Name: "buy milk", UserID: create.UserID}

	mockWriter.EXPECT().
		Create(gomock.Any(), create).
		Return(stored, nil)

	task, err := svc.Create(context.Background(), create)
	assert.NoError(t, err)
	assert.Equal(t, stored, task)
}

func TestTaskService_Create_PublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTaskReader(ctrl)
	mockWriter := services.NewMockTaskWriter(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewTaskService(mockReader, mockWriter, mockKafka)

	create := models.TaskCreate{Name: "buy milk", UserID: uuid.New()}
	stored := &models.Task{ID: uuid.New(), Name: "buy milk", UserID: create.UserID}

	mockWriter.EXPECT().
		Create(gomock.Any(), create).
		Return(stored, nil)
	mockKafka.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	task, err := svc.Create(context.Background(), create)
	assert.NoError(t, err)
	assert.Equal(t, stored, task)
}

func TestTaskService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTaskReader(ctrl)
	mockWriter := services.NewMockTaskWriter(ctrl)

	svc := services.NewTaskService(mockReader, mockWriter, nil)

	userID := uuid.New()
	taskID := uuid.New()
	done := true
	upd := models.TaskUpdate{Done: &done}

	tests := []struct {
		name      string
		existing  *models.Task
		readerErr error
		writerErr error
		wantErr   error
	}{
		{
			name:     "owner updates",
			existing: &models.Task{ID: taskID, Name: "buy milk", UserID: userID},
		},
		{
			name:     "another user's task",
			existing: &models.Task{ID: taskID, Name: "buy milk", UserID: uuid.New()},
			wantErr:  services.ErrForbidden,
		},
		{
			name:      "not found",
			readerErr: repositories.ErrTaskNotFound,
			wantErr:   repositories.ErrTaskNotFound,
		},
		{
			name:      "writer error",
			existing:  &models.Task{ID: taskID, Name: "buy milk", UserID: userID},
			writerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByID(gomock.Any(), taskID).
				Return(tt.existing, tt.readerErr)

			updated := &models.Task{ID: taskID, Name: "buy milk", Done: true, UserID: userID}
			if tt.existing != nil && tt.existing.UserID == userID {
				mockWriter.EXPECT().
					Update(gomock.Any(), taskID, upd).
					Return(updated, tt.writerErr)
			}

			got, err := svc.Update(context.Background(), userID, taskID, upd)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, updated, got)
			}
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTaskReader(ctrl)
	mockWriter := services.NewMockTaskWriter(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewTaskService(mockReader, mockWriter, mockKafka)

	userID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name      string
		existing  *models.Task
		readerErr error
		writerErr error
		wantErr   error
	}{
		{
			name:     "owner deletes",
			existing: &models.Task{ID: taskID, Name: "buy milk", UserID: userID},
		},
		{
			name:     "another user's task",
			existing: &models.Task{ID: taskID, Name: "buy milk", UserID: uuid.New()},
			wantErr:  services.ErrForbidden,
		},
		{
			name:      "not found",
			readerErr: repositories.ErrTaskNotFound,
			wantErr:   repositories.ErrTaskNotFound,
		},
		{
			name:      "writer error",
			existing:  &models.Task{ID: taskID, Name: "buy milk", UserID: userID},
			writerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByID(gomock.Any(), taskID).
				Return(tt.existing, tt.readerErr)

			if tt.existing != nil && tt.existing.UserID == userID {
				mockWriter.EXPECT().
					Delete(gomock.Any(), taskID).
					Return(tt.writerErr)
				if tt.writerErr == nil {
					mockKafka.EXPECT().
						WriteMessages(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
							var event models.TaskEvent
							assert.NoError(t, json.Unmarshal(msgs[0].Value, &event))
							assert.Equal(t, models.TaskEventDeleted, event.Operation)
							return nil
						})
				}
			}

			err := svc.Delete(context.Background(), userID, taskID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
