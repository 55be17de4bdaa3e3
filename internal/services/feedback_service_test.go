package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"github.com/yukikurage/taskerrand-api/internal/testutil"
)

func TestFeedbackService_Create(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "poster@example.com")
	seeker := testutil.CreateUser(t, db, "seeker@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")

	newTask := func(status models.TaskStatus) *models.Task {
		task := &models.Task{
			Title:       "Paint the shed",
			Description: "One coat",
			Payment:     decimal.NewFromInt(80),
			Status:      status,
			PosterID:    poster.ID,
			SeekerID:    &seeker.ID,
		}
		require.NoError(t, db.Create(task).Error)
		return task
	}

	service := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
	)

	completed := newTask(models.TaskStatusCompleted)
	pending := newTask(models.TaskStatusPendingConfirmation)

	tests := []struct {
		name    string
		actorID uint64
		input   CreateFeedbackInput
		wantErr error
	}{
		{"unknown task", poster.ID, CreateFeedbackInput{TaskID: 9999, SeekerID: seeker.ID, Rating: 5}, ErrTaskNotFound},
		{"task not completed", poster.ID, CreateFeedbackInput{TaskID: pending.ID, SeekerID: seeker.ID, Rating: 5}, ErrTaskNotCompleted},
		{"not the poster", other.ID, CreateFeedbackInput{TaskID: completed.ID, SeekerID: seeker.ID, Rating: 5}, ErrNotTaskPoster},
		{"wrong seeker", poster.ID, CreateFeedbackInput{TaskID: completed.ID, SeekerID: other.ID, Rating: 5}, ErrSeekerMismatch},
		{"rating too low", poster.ID, CreateFeedbackInput{TaskID: completed.ID, SeekerID: seeker.ID, Rating: 0}, ErrInvalidRating},
		{"rating too high", poster.ID, CreateFeedbackInput{TaskID: completed.ID, SeekerID: seeker.ID, Rating: 6}, ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.actorID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	fb, err := service.Create(ctx, poster.ID, CreateFeedbackInput{
		TaskID:   completed.ID,
		SeekerID: seeker.ID,
		Rating:   4,
		Comment:  "Neat work",
	})
	require.NoError(t, err)
	assert.Equal(t, poster.ID, fb.PosterID)
	assert.Equal(t, 4, fb.Rating)

	_, err = service.Create(ctx, poster.ID, CreateFeedbackInput{TaskID: completed.ID, SeekerID: seeker.ID, Rating: 1})
	assert.ErrorIs(t, err, ErrFeedbackExists)

	received, err := service.ListForSeeker(ctx, seeker.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "Neat work", received[0].Comment)

	_, err = service.ListForSeeker(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
