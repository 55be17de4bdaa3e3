package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"gorm.io/gorm"
)

// MessageService handles per-task conversations between poster and seeker
type MessageService struct {
	messageRepo repository.MessageRepository
	taskRepo    repository.TaskRepository
	notifier    Notifier
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repository.MessageRepository, taskRepo repository.TaskRepository, notifier Notifier) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		taskRepo:    taskRepo,
		notifier:    notifier,
	}
}

// Send posts a message on a task and notifies the other participant
func (s *MessageService) Send(ctx context.Context, actorID, taskID uint64, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	task, err := s.participantTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		TaskID:   taskID,
		SenderID: actorID,
		Content:  content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	recipient := task.SeekerID
	if task.IsSeeker(actorID) {
		recipient = &task.PosterID
	}
	if recipient != nil && *recipient != actorID && s.notifier != nil {
		s.notifier.Notify(ctx, NotifyInput{
			UserID:  *recipient,
			TaskID:  &task.ID,
			Title:   "New Message",
			Message: fmt.Sprintf("You have a new message regarding task '%s'.", task.Title),
			Type:    models.NotificationTypeMessage,
			Data: map[string]any{
				"message_id": msg.ID,
				"actor_id":   actorID,
			},
		})
	}

	return msg, nil
}

// List returns a task's conversation oldest first
func (s *MessageService) List(ctx context.Context, actorID, taskID uint64) ([]models.Message, error) {
	if _, err := s.participantTask(ctx, actorID, taskID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (s *MessageService) participantTask(ctx context.Context, actorID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.IsParticipant(actorID) {
		return nil, ErrNotTaskParticipant
	}
	return task, nil
}
