package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/utils"
)

var (
	// ErrTransitionConflict is returned when a conditional task update matched no row,
	// meaning the task left the expected state between read and write.
	ErrTransitionConflict = errors.New("task repository: task state changed concurrently")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("repository: duplicate record")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task together with its locations
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// UpdateFields writes the given mutable columns and, when locations is non-nil,
	// replaces the whole location list in the same transaction
	UpdateFields(ctx context.Context, id uint64, fields map[string]any, locations *[]models.TaskLocation) error

	// Transition applies changes only if the row still satisfies guard
	Transition(ctx context.Context, id uint64, guard TransitionGuard, changes map[string]any) error

	// Delete removes a task and every row referencing it atomically
	Delete(ctx context.Context, id uint64) error

	// CountReports counts the abuse reports filed against a task
	CountReports(ctx context.Context, taskID uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status        *models.TaskStatus
	TitleQuery    string
	PosterID      *uint64
	SeekerID      *uint64
	ParticipantID *uint64
	Page          utils.PaginationParams
}

// TransitionGuard is the precondition a conditional task update must still satisfy.
type TransitionGuard struct {
	From         models.TaskStatus
	SeekerID     *uint64
	RequireProof bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByExternalID finds a user by the identity provider's id
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)

	// UpdateProfile writes the editable profile columns
	UpdateProfile(ctx context.Context, id uint64, fields map[string]any) error

	// List lists all users
	List(ctx context.Context, page utils.PaginationParams) ([]models.User, int64, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error

	// ListByTask returns a task's conversation oldest first
	ListByTask(ctx context.Context, taskID uint64) ([]models.Message, error)
}

// FeedbackRepository defines the interface for feedback data access
type FeedbackRepository interface {
	// Create inserts feedback; ErrDuplicate when the task already has feedback
	Create(ctx context.Context, fb *models.Feedback) error

	FindByTaskAndPoster(ctx context.Context, taskID, posterID uint64) (*models.Feedback, error)

	// ListBySeeker lists feedback received by a seeker, newest first
	ListBySeeker(ctx context.Context, seekerID uint64) ([]models.Feedback, error)
}

// ReportRepository defines the interface for task report data access
type ReportRepository interface {
	Create(ctx context.Context, report *models.TaskReport) error
	FindByID(ctx context.Context, id uint64) (*models.TaskReport, error)

	// List lists reports newest first
	List(ctx context.Context, page utils.PaginationParams) ([]models.TaskReport, int64, error)

	Delete(ctx context.Context, id uint64) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id uint64) (*models.Notification, error)

	// ListByUser lists a user's inbox newest first
	ListByUser(ctx context.Context, userID uint64) ([]models.Notification, error)

	MarkSeen(ctx context.Context, id uint64) error
	MarkAllSeen(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, id uint64) error
}
