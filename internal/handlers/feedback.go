package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/dto"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
	"github.com/yukikurage/taskerrand-api/internal/services"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// Rating bounds are enforced by the service so the error code stays consistent.
type createFeedbackRequest struct {
	TaskID   uint64 `json:"task_id" binding:"required"`
	SeekerID uint64 `json:"seeker_id" binding:"required"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// CreateFeedback rates the seeker of a completed task
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	fb, err := h.feedbackService.Create(c.Request.Context(), user.ID, services.CreateFeedbackInput{
		TaskID:   req.TaskID,
		SeekerID: req.SeekerID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeedbackDTO(*fb))
}
