package repository

import (
	"context"

	"github.com/yukikurage/taskerrand-api/internal/database"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/utils"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(ctx context.Context, report *models.TaskReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *GormReportRepository) FindByID(ctx context.Context, id uint64) (*models.TaskReport, error) {
	var report models.TaskReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// List lists reports newest first
func (r *GormReportRepository) List(ctx context.Context, page utils.PaginationParams) ([]models.TaskReport, int64, error) {
	var reports []models.TaskReport

	query := r.db.WithContext(ctx).Model(&models.TaskReport{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Scopes(database.Paginate(page)).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *GormReportRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&models.TaskReport{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
