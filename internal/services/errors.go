package services

import (
	"errors"

	"github.com/yukikurage/taskerrand-api/internal/repository"
)

// Not found
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Forbidden
var (
	ErrNotTaskPoster        = errors.New("only the poster can perform this action")
	ErrNotTaskSeeker        = errors.New("only the seeker can perform this action")
	ErrNotTaskParticipant   = errors.New("only the poster or the seeker of this task can perform this action")
	ErrNotPosterOrAdmin     = errors.New("only the poster or an admin can modify this task")
	ErrAdminRequired        = errors.New("admin access required")
	ErrNotNotificationOwner = errors.New("notification belongs to another user")
)

// Invalid state
var (
	ErrTaskNotAvailable           = errors.New("task is not available")
	ErrTaskNotOngoing             = errors.New("task is not ongoing")
	ErrTaskNotPendingConfirmation = errors.New("task is not pending confirmation")
	ErrTaskNotCompleted           = errors.New("feedback can only be left on completed tasks")
	ErrTaskNotCancellable         = errors.New("task cannot be cancelled in its current status")
	ErrCannotAcceptOwnTask        = errors.New("cannot accept your own task")
)

// Validation
var (
	ErrProofRequired       = errors.New("a proof image must be uploaded before completing the task")
	ErrSeekerMismatch      = errors.New("seeker does not match the task's seeker")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrSelfReport          = errors.New("cannot report your own task")
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrNegativePayment     = errors.New("payment cannot be negative")
	ErrInvalidCoordinates  = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrInvalidStatus       = errors.New("unknown task status")
	ErrInvalidTaskType     = errors.New("task_type must be posted or accepted")
	ErrContentRequired     = errors.New("message content is required")
	ErrReportTypeRequired  = errors.New("report type is required")
	ErrInvalidIdentity     = errors.New("identity has no external id or email")
)

// ErrFeedbackExists is returned when the task already has feedback.
var ErrFeedbackExists = errors.New("feedback already provided for this task")

// ErrTransitionConflict is returned when another request changed the task first.
var ErrTransitionConflict = repository.ErrTransitionConflict
