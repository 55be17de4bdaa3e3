package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/dto"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
	"github.com/yukikurage/taskerrand-api/internal/services"
	"github.com/yukikurage/taskerrand-api/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

type createReportRequest struct {
	TaskID      uint64 `json:"task_id" binding:"required"`
	ReportType  string `json:"report_type" binding:"max=100"`
	Description string `json:"description"`
}

// CreateReport files a report against a task
func (h *ReportHandler) CreateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), user.ID, services.CreateReportInput{
		TaskID:      req.TaskID,
		ReportType:  req.ReportType,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*report))
}

// ListReports lists every report, newest first. Admin only.
func (h *ReportHandler) ListReports(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reports, total, err := h.reportService.List(c.Request.Context(), user, utils.GetPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, total, dto.ToReportDTOs(reports))
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), user, reportID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(*report))
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), user, reportID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
