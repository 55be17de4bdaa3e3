package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskerrand-api/internal/authz"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"github.com/yukikurage/taskerrand-api/internal/utils"
	"gorm.io/gorm"
)

// ReportService handles abuse reports filed against tasks
type ReportService struct {
	reportRepo repository.ReportRepository
	taskRepo   repository.TaskRepository
	policy     *authz.AdminPolicy
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, taskRepo repository.TaskRepository, policy *authz.AdminPolicy) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		taskRepo:   taskRepo,
		policy:     policy,
	}
}

// CreateReportInput represents input for filing a report
type CreateReportInput struct {
	TaskID      uint64
	ReportType  string
	Description string
}

// Create files a report. Posters cannot report their own tasks.
func (s *ReportService) Create(ctx context.Context, actorID uint64, input CreateReportInput) (*models.TaskReport, error) {
	reportType := strings.TrimSpace(input.ReportType)
	if reportType == "" {
		return nil, ErrReportTypeRequired
	}

	task, err := s.taskRepo.FindByID(ctx, input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.PosterID == actorID {
		return nil, ErrSelfReport
	}

	report := &models.TaskReport{
		TaskID:      input.TaskID,
		ReporterID:  actorID,
		ReportType:  reportType,
		Description: input.Description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// List returns all reports newest first. Admin only.
func (s *ReportService) List(ctx context.Context, actor *models.User, page utils.PaginationParams) ([]models.TaskReport, int64, error) {
	if !s.policy.IsAdmin(actor) {
		return nil, 0, ErrAdminRequired
	}

	reports, total, err := s.reportRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// Get returns a single report. Admin only.
func (s *ReportService) Get(ctx context.Context, actor *models.User, id uint64) (*models.TaskReport, error) {
	if !s.policy.IsAdmin(actor) {
		return nil, ErrAdminRequired
	}

	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// Delete removes a report. Admin only.
func (s *ReportService) Delete(ctx context.Context, actor *models.User, id uint64) error {
	if !s.policy.IsAdmin(actor) {
		return ErrAdminRequired
	}

	if err := s.reportRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}
