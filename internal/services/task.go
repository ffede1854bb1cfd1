package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/models"
)

var (
	// ErrForbidden is returned when the authenticated user is not the owner
	// of the task. Distinct from not-found: existence is revealed, access
	// is denied.
	ErrForbidden = errors.New("task belongs to another user")
)

// TaskReader defines read-only operations for tasks.
type TaskReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	Create(ctx context.Context, create models.TaskCreate) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TaskService enforces ownership on task operations and publishes task
// lifecycle events.
type TaskService struct {
	reader      TaskReader
	writer      TaskWriter
	kafkaWriter KafkaWriter
}

// NewTaskService creates a new TaskService. kafkaWriter may be nil, in which
// case publishing is skipped.
func NewTaskService(reader TaskReader, writer TaskWriter, kafkaWriter KafkaWriter) *TaskService {
	return &TaskService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a task lifecycle event to Kafka, fire-and-forget.
func (s *TaskService) publishEvent(ctx context.Context, operation string, task *models.Task) {
	if s.kafkaWriter == nil {
		return
	}

	event := models.TaskEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Operation: operation,
		UserID:    task.UserID.String(),
		TaskID:    task.ID.String(),
		Name:      task.Name,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal task event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TaskID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish task event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("task event published", "event_id", event.EventID, "operation", operation)
	}
}

// List returns all tasks of the user. Ownership needs no extra check here:
// the query itself filters by owner.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	return s.reader.ListByUser(ctx, userID)
}

// Get returns a single task if the user owns it.
func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.reader.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		logger.Log.Infow("task access denied", "task_id", taskID, "user_id", userID)
		return nil, ErrForbidden
	}
	return task, nil
}

// Create stores a new task for its owner and publishes a created event.
func (s *TaskService) Create(ctx context.Context, create models.TaskCreate) (*models.Task, error) {
	task, err := s.writer.Create(ctx, create)
	if err != nil {
		logger.Log.Errorw("failed to create task", "user_id", create.UserID, "err", err)
		return nil, err
	}

	s.publishEvent(ctx, models.TaskEventCreated, task)
	return task, nil
}

// Update applies a partial update after checking ownership and publishes an
// updated event.
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, upd models.TaskUpdate) (*models.Task, error) {
	task, err := s.reader.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		logger.Log.Infow("task update denied", "task_id", taskID, "user_id", userID)
		return nil, ErrForbidden
	}

	updated, err := s.writer.Update(ctx, taskID, upd)
	if err != nil {
		logger.Log.Errorw("failed to update task", "task_id", taskID, "err", err)
		return nil, err
	}

	s.publishEvent(ctx, models.TaskEventUpdated, updated)
	return updated, nil
}

// Delete removes a task after checking ownership and publishes a deleted
// event.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.reader.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		logger.Log.Infow("task delete denied", "task_id", taskID, "user_id", userID)
		return ErrForbidden
	}

	if err := s.writer.Delete(ctx, taskID); err != nil {
		logger.Log.Errorw("failed to delete task", "task_id", taskID, "err", err)
		return err
	}

	s.publishEvent(ctx, models.TaskEventDeleted, task)
	return nil
}
