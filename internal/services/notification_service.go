package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier delivers inbox entries produced by lifecycle and messaging events.
type Notifier interface {
	Notify(ctx context.Context, input NotifyInput)
}

// NotifyInput describes one inbox entry
type NotifyInput struct {
	UserID  uint64
	TaskID  *uint64
	Title   string
	Message string
	Type    models.NotificationType
	Data    map[string]any
}

// NotificationService handles the per-user inbox
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// Notify stores a notification. Failures are logged and never reach the caller,
// so the triggering operation is not rolled back.
func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) {
	n := &models.Notification{
		UserID:  input.UserID,
		TaskID:  input.TaskID,
		Title:   input.Title,
		Message: input.Message,
		Type:    input.Type,
	}
	if len(input.Data) > 0 {
		n.Data = datatypes.JSONMap(input.Data)
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to create notification",
			slog.Uint64("user_id", input.UserID),
			slog.String("type", string(input.Type)),
			slog.Any("err", err),
		)
	}
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uint64) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips the seen flag of a notification owned by userID
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint64) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.notificationRepo.MarkSeen(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification of userID as seen and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	n, err := s.notificationRepo.MarkAllSeen(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return n, nil
}

// Delete removes a notification owned by userID
func (s *NotificationService) Delete(ctx context.Context, userID, id uint64) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.notificationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (s *NotificationService) findOwned(ctx context.Context, userID, id uint64) (*models.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if n.UserID != userID {
		return nil, ErrNotNotificationOwner
	}
	return n, nil
}
