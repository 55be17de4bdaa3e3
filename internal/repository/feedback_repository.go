package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/taskerrand-api/internal/models"
	"gorm.io/gorm"
)

// GormFeedbackRepository is a GORM implementation of FeedbackRepository
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Create inserts feedback, relying on the unique task_id index as the last word
func (r *GormFeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	err := r.db.WithContext(ctx).Create(fb).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// FindByTaskAndPoster finds the feedback a poster left on a task
func (r *GormFeedbackRepository) FindByTaskAndPoster(ctx context.Context, taskID, posterID uint64) (*models.Feedback, error) {
	var fb models.Feedback
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND poster_id = ?", taskID, posterID).
		First(&fb).Error
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// ListBySeeker lists feedback received by a seeker, newest first
func (r *GormFeedbackRepository) ListBySeeker(ctx context.Context, seekerID uint64) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := r.db.WithContext(ctx).
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
