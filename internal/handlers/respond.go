package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
	"github.com/yukikurage/taskerrand-api/internal/middleware"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/services"
	"github.com/yukikurage/taskerrand-api/internal/storage"
)

// TotalCountHeader carries the unpaginated size of list responses
const TotalCountHeader = "X-Total-Count"

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrNotTaskPoster),
		errors.Is(err, services.ErrNotTaskSeeker),
		errors.Is(err, services.ErrNotTaskParticipant),
		errors.Is(err, services.ErrNotPosterOrAdmin),
		errors.Is(err, services.ErrAdminRequired),
		errors.Is(err, services.ErrNotNotificationOwner):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrTaskNotAvailable),
		errors.Is(err, services.ErrTaskNotOngoing),
		errors.Is(err, services.ErrTaskNotPendingConfirmation),
		errors.Is(err, services.ErrTaskNotCompleted),
		errors.Is(err, services.ErrTaskNotCancellable),
		errors.Is(err, services.ErrCannotAcceptOwnTask):
		apierrors.InvalidOperation(c, err.Error())

	case errors.Is(err, services.ErrProofRequired),
		errors.Is(err, services.ErrSeekerMismatch),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrSelfReport),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrNegativePayment),
		errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTaskType),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrReportTypeRequired),
		errors.Is(err, storage.ErrNotAnImage),
		errors.Is(err, storage.ErrEmptyFile):
		apierrors.BadRequest(c, rootMessage(err))

	case errors.Is(err, storage.ErrTooLarge):
		apierrors.RespondWithError(c, http.StatusRequestEntityTooLarge,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, storage.ErrTooLarge.Error()))

	case errors.Is(err, services.ErrFeedbackExists):
		apierrors.AlreadyExists(c, err.Error())

	case errors.Is(err, services.ErrTransitionConflict):
		apierrors.Conflict(c, "Task was modified by another request, please retry")

	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.Any("err", err),
		)
		apierrors.InternalError(c, "")
	}
}

// rootMessage strips wrapping context so storage errors read cleanly
func rootMessage(err error) string {
	for _, target := range []error{storage.ErrNotAnImage, storage.ErrEmptyFile} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// currentUser fetches the authenticated user or writes a 401
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return user, true
}

// taskIDParam fetches the task ID parsed by middleware.RequireTaskID
func taskIDParam(c *gin.Context) (uint64, bool) {
	id, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}

func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

func parseStatusFilter(c *gin.Context) *models.TaskStatus {
	raw := c.Query("status_filter")
	if raw == "" {
		return nil
	}
	status := models.TaskStatus(raw)
	return &status
}

// writeList writes a JSON array with the unpaginated total in a header
func writeList(c *gin.Context, total int64, items any) {
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, items)
}
