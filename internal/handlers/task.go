package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/taskerrand-api/internal/constants"
	"github.com/yukikurage/taskerrand-api/internal/dto"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/services"
	"github.com/yukikurage/taskerrand-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type locationRequest struct {
	Lat     float64 `json:"lat" binding:"min=-90,max=90"`
	Lng     float64 `json:"lng" binding:"min=-180,max=180"`
	Address string  `json:"address"`
	Idx     *int    `json:"idx"`
}

type createTaskRequest struct {
	Title           string            `json:"title" binding:"required,max=255"`
	Description     string            `json:"description" binding:"required"`
	Payment         *decimal.Decimal  `json:"payment" binding:"required"`
	ContactNumber   string            `json:"contact_number" binding:"max=50"`
	LocationLat     *float64          `json:"location_lat" binding:"required"`
	LocationLng     *float64          `json:"location_lng" binding:"required"`
	LocationAddress string            `json:"location_address"`
	Schedule        *time.Time        `json:"schedule"`
	Locations       []locationRequest `json:"locations" binding:"omitempty,dive"`
}

// Status is accepted for compatibility with older clients and ignored;
// lifecycle changes go through the dedicated endpoints.
type updateTaskRequest struct {
	Title           *string            `json:"title" binding:"omitempty,max=255"`
	Description     *string            `json:"description"`
	Payment         *decimal.Decimal   `json:"payment"`
	ContactNumber   *string            `json:"contact_number" binding:"omitempty,max=50"`
	LocationLat     *float64           `json:"location_lat"`
	LocationLng     *float64           `json:"location_lng"`
	LocationAddress *string            `json:"location_address"`
	Schedule        *time.Time         `json:"schedule"`
	Status          *string            `json:"status"`
	Locations       *[]locationRequest `json:"locations" binding:"omitempty,dive"`
}

func toLocationInputs(in []locationRequest) []services.LocationInput {
	out := make([]services.LocationInput, len(in))
	for i, loc := range in {
		out[i] = services.LocationInput{
			Lat:     loc.Lat,
			Lng:     loc.Lng,
			Address: loc.Address,
			Idx:     loc.Idx,
		}
	}
	return out
}

// CreateTask posts a new task owned by the caller
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), user, services.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Payment:         *req.Payment,
		ContactNumber:   req.ContactNumber,
		LocationLat:     *req.LocationLat,
		LocationLng:     *req.LocationLng,
		LocationAddress: req.LocationAddress,
		Schedule:        req.Schedule,
		Locations:       toLocationInputs(req.Locations),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks lists tasks, optionally filtered by status_filter
func (h *TaskHandler) ListTasks(c *gin.Context) {
	h.listTasks(c, "")
}

// SearchTasks matches query against task titles, case-insensitively
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	h.listTasks(c, c.Query("query"))
}

func (h *TaskHandler) listTasks(c *gin.Context, query string) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.List(c.Request.Context(), user, services.ListTasksInput{
		Status: parseStatusFilter(c),
		Query:  query,
		Page:   page,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, total, dto.ToTaskDTOs(tasks))
}

// ListMyTasks lists tasks the caller posted or accepted
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListMine(c.Request.Context(), user, c.Query("task_type"), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, total, dto.ToTaskDTOs(tasks))
}

// GetTask returns a task with its report count
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	details, err := h.taskService.Get(c.Request.Context(), taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ToTaskDTO(*details.Task)
	resp.ReportCount = details.ReportCount
	c.JSON(http.StatusOK, resp)
}

// UpdateTask updates the mutable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	input := services.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Payment:         req.Payment,
		ContactNumber:   req.ContactNumber,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
		Schedule:        req.Schedule,
	}
	if req.Locations != nil {
		locations := toLocationInputs(*req.Locations)
		input.Locations = &locations
	}

	task, err := h.taskService.Update(c.Request.Context(), user, taskID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and everything referencing it
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), user, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AcceptTask assigns the task to the caller
func (h *TaskHandler) AcceptTask(c *gin.Context) {
	h.transition(c, h.taskService.Accept)
}

// CompleteTask marks the task as done by its seeker
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.transition(c, h.taskService.Complete)
}

// ConfirmTask confirms completion by the poster
func (h *TaskHandler) ConfirmTask(c *gin.Context) {
	h.transition(c, h.taskService.Confirm)
}

// CancelTask cancels or releases the task
func (h *TaskHandler) CancelTask(c *gin.Context) {
	h.transition(c, h.taskService.Cancel)
}

type transitionFunc func(ctx context.Context, actor *models.User, id uint64) (*models.Task, error)

func (h *TaskHandler) transition(c *gin.Context, apply transitionFunc) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := apply(c.Request.Context(), user, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UploadProof attaches a proof-of-completion image sent as multipart field "file"
func (h *TaskHandler) UploadProof(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	header, err := c.FormFile(constants.ProofFormField)
	if err != nil {
		apierrors.BadRequest(c, "A proof image is required in the \"file\" field")
		return
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	task, err := h.taskService.AttachProof(c.Request.Context(), user, taskID, file, header.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proof_image": task.ProofImage,
		"task":        dto.ToTaskDTO(*task),
	})
}
