package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/dto"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
	"github.com/yukikurage/taskerrand-api/internal/services"
)

type UserHandler struct {
	userService     *services.UserService
	feedbackService *services.FeedbackService
}

func NewUserHandler(userService *services.UserService, feedbackService *services.FeedbackService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		feedbackService: feedbackService,
	}
}

type updateProfileRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=255"`
	FirstName     *string `json:"first_name" binding:"omitempty,max=100"`
	LastName      *string `json:"last_name" binding:"omitempty,max=100"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=50"`
}

// GetMe returns the authenticated user
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, h.userService.IsAdmin(user)))
}

// UpdateMe edits the caller's profile
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user.ID, services.UpdateProfileInput{
		Name:          req.Name,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated, h.userService.IsAdmin(updated)))
}

// GetUser returns another user's public profile
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserSummaryDTO(*user))
}

// ListFeedback returns the feedback a seeker has received, newest first
func (h *UserHandler) ListFeedback(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	feedback, err := h.feedbackService.ListForSeeker(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, int64(len(feedback)), dto.ToFeedbackDTOs(feedback))
}
