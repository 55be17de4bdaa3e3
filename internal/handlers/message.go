package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/dto"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
	"github.com/yukikurage/taskerrand-api/internal/services"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

type sendMessageRequest struct {
	TaskID  uint64 `json:"task_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// SendMessage posts a message on a task thread
func (h *MessageHandler) SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), user.ID, req.TaskID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*msg))
}

// ListMessages lists the thread named by the task_id query parameter
func (h *MessageHandler) ListMessages(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Query("task_id"), 10, 64)
	if err != nil || taskID == 0 {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}
	h.list(c, taskID)
}

// ListTaskMessages lists the thread of the task in the path
func (h *MessageHandler) ListTaskMessages(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}
	h.list(c, taskID)
}

func (h *MessageHandler) list(c *gin.Context, taskID uint64) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	messages, err := h.messageService.List(c.Request.Context(), user.ID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, int64(len(messages)), dto.ToMessageDTOs(messages))
}
