package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/taskerrand-api/internal/constants"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"gorm.io/gorm"
)

// FeedbackService handles the poster's rating of a completed task
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	taskRepo     repository.TaskRepository
	userRepo     repository.UserRepository
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		taskRepo:     taskRepo,
		userRepo:     userRepo,
	}
}

// CreateFeedbackInput represents input for leaving feedback
type CreateFeedbackInput struct {
	TaskID   uint64
	SeekerID uint64
	Rating   int
	Comment  string
}

// Create records the poster's single feedback for a completed task
func (s *FeedbackService) Create(ctx context.Context, actorID uint64, input CreateFeedbackInput) (*models.Feedback, error) {
	task, err := s.taskRepo.FindByID(ctx, input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Status != models.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}
	if task.PosterID != actorID {
		return nil, ErrNotTaskPoster
	}
	if !task.IsSeeker(input.SeekerID) {
		return nil, ErrSeekerMismatch
	}
	if input.Rating < constants.MinRating || input.Rating > constants.MaxRating {
		return nil, ErrInvalidRating
	}

	if _, err := s.feedbackRepo.FindByTaskAndPoster(ctx, input.TaskID, actorID); err == nil {
		return nil, ErrFeedbackExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing feedback: %w", err)
	}

	fb := &models.Feedback{
		TaskID:   input.TaskID,
		PosterID: actorID,
		SeekerID: input.SeekerID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFeedbackExists
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return fb, nil
}

// ListForSeeker returns the feedback a user received as seeker, newest first
func (s *FeedbackService) ListForSeeker(ctx context.Context, seekerID uint64) ([]models.Feedback, error) {
	if _, err := s.userRepo.FindByID(ctx, seekerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	feedback, err := s.feedbackRepo.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}
