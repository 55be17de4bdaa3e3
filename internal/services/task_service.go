package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/taskerrand-api/internal/authz"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"github.com/yukikurage/taskerrand-api/internal/storage"
	"github.com/yukikurage/taskerrand-api/internal/utils"
	"gorm.io/gorm"
)

// Task type filters for ListMine
const (
	TaskTypePosted   = "posted"
	TaskTypeAccepted = "accepted"
)

var detailPreloads = []string{
	repository.PreloadLocations,
	repository.PreloadSeeker,
	repository.PreloadFeedback,
}

// TaskService owns the task lifecycle
type TaskService struct {
	taskRepo repository.TaskRepository
	store    storage.ProofStore
	notifier Notifier
	policy   *authz.AdminPolicy
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, store storage.ProofStore, notifier Notifier, policy *authz.AdminPolicy) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		store:    store,
		notifier: notifier,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// LocationInput is one entry of a task's auxiliary location list
type LocationInput struct {
	Lat     float64
	Lng     float64
	Address string
	Idx     *int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title           string
	Description     string
	Payment         decimal.Decimal
	ContactNumber   string
	LocationLat     float64
	LocationLng     float64
	LocationAddress string
	Schedule        *time.Time
	Locations       []LocationInput
}

// UpdateTaskInput represents input for updating a task. Nil fields are left unchanged;
// a non-nil Locations replaces the whole list.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Payment         *decimal.Decimal
	ContactNumber   *string
	LocationLat     *float64
	LocationLng     *float64
	LocationAddress *string
	Schedule        *time.Time
	Locations       *[]LocationInput
}

// ListTasksInput represents filters for listing and searching tasks
type ListTasksInput struct {
	Status *models.TaskStatus
	Query  string
	Page   utils.PaginationParams
}

// TaskDetails is a task together with its derived report count
type TaskDetails struct {
	Task        *models.Task
	ReportCount int64
}

// Create posts a new available task owned by the actor
func (s *TaskService) Create(ctx context.Context, actor *models.User, input CreateTaskInput) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if input.Payment.IsNegative() {
		return nil, ErrNegativePayment
	}
	if !validCoordinates(input.LocationLat, input.LocationLng) {
		return nil, ErrInvalidCoordinates
	}
	locations, err := buildLocations(input.Locations)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:           input.Title,
		Description:     input.Description,
		Payment:         input.Payment,
		ContactNumber:   input.ContactNumber,
		LocationLat:     input.LocationLat,
		LocationLng:     input.LocationLng,
		LocationAddress: input.LocationAddress,
		Schedule:        input.Schedule,
		Status:          models.TaskStatusAvailable,
		PosterID:        actor.ID,
		Locations:       locations,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.reload(ctx, task.ID)
}

// Get returns a task with its locations, seeker, feedback and report count
func (s *TaskService) Get(ctx context.Context, id uint64) (*TaskDetails, error) {
	task, err := s.find(ctx, id, detailPreloads...)
	if err != nil {
		return nil, err
	}

	count, err := s.taskRepo.CountReports(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	return &TaskDetails{Task: task, ReportCount: count}, nil
}

// List returns tasks newest first. Without a status filter non-admins only see available tasks.
func (s *TaskService) List(ctx context.Context, actor *models.User, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		TitleQuery: input.Query,
		Page:       input.Page,
	}

	switch {
	case input.Status != nil:
		if !input.Status.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		filter.Status = input.Status
	case !s.policy.IsAdmin(actor):
		available := models.TaskStatusAvailable
		filter.Status = &available
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListMine returns the tasks the actor posted, accepted, or either when taskType is empty
func (s *TaskService) ListMine(ctx context.Context, actor *models.User, taskType string, page utils.PaginationParams) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{Page: page}

	switch taskType {
	case TaskTypePosted:
		filter.PosterID = &actor.ID
	case TaskTypeAccepted:
		filter.SeekerID = &actor.ID
	case "":
		filter.ParticipantID = &actor.ID
	default:
		return nil, 0, ErrInvalidTaskType
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Update changes the mutable fields of a task. Status and ownership are never touched here.
func (s *TaskService) Update(ctx context.Context, actor *models.User, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.PosterID != actor.ID && !s.policy.IsAdmin(actor) {
		return nil, ErrNotPosterOrAdmin
	}

	fields := map[string]any{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		fields["title"] = title
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		fields["description"] = *input.Description
	}
	if input.Payment != nil {
		if input.Payment.IsNegative() {
			return nil, ErrNegativePayment
		}
		fields["payment"] = *input.Payment
	}
	if input.ContactNumber != nil {
		fields["contact_number"] = *input.ContactNumber
	}
	if input.LocationLat != nil || input.LocationLng != nil {
		lat, lng := task.LocationLat, task.LocationLng
		if input.LocationLat != nil {
			lat = *input.LocationLat
		}
		if input.LocationLng != nil {
			lng = *input.LocationLng
		}
		if !validCoordinates(lat, lng) {
			return nil, ErrInvalidCoordinates
		}
		fields["location_lat"] = lat
		fields["location_lng"] = lng
	}
	if input.LocationAddress != nil {
		fields["location_address"] = *input.LocationAddress
	}
	if input.Schedule != nil {
		fields["schedule"] = *input.Schedule
	}

	var locations *[]models.TaskLocation
	if input.Locations != nil {
		built, err := buildLocations(*input.Locations)
		if err != nil {
			return nil, err
		}
		locations = &built
	}

	if len(fields) == 0 && locations == nil {
		return s.reload(ctx, id)
	}
	fields["updated_at"] = s.now()

	if err := s.taskRepo.UpdateFields(ctx, id, fields, locations); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.reload(ctx, id)
}

// Delete removes a task and everything referencing it
func (s *TaskService) Delete(ctx context.Context, actor *models.User, id uint64) error {
	task, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if task.PosterID != actor.ID && !s.policy.IsAdmin(actor) {
		return ErrNotPosterOrAdmin
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if task.ProofImage != nil {
		s.removeProof(ctx, *task.ProofImage)
	}
	return nil
}

// Accept assigns an available task to the actor
func (s *TaskService) Accept(ctx context.Context, actor *models.User, id uint64) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusAvailable {
		return nil, ErrTaskNotAvailable
	}
	if task.PosterID == actor.ID {
		return nil, ErrCannotAcceptOwnTask
	}

	err = s.transition(ctx, id, repository.TransitionGuard{From: models.TaskStatusAvailable}, map[string]any{
		"status":      models.TaskStatusOngoing,
		"seeker_id":   actor.ID,
		"accepted_at": s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.notifyTask(ctx, task, task.PosterID, actor, models.TaskStatusOngoing,
		"Task Accepted",
		fmt.Sprintf("Your task '%s' has been accepted by %s.", task.Title, actor.DisplayName()))

	return s.reload(ctx, id)
}

// AttachProof stores a proof-of-completion image and binds it to an ongoing task.
// The file is removed again when the task changed before the reference was written.
func (s *TaskService) AttachProof(ctx context.Context, actor *models.User, id uint64, r io.Reader, contentType string) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusOngoing {
		return nil, ErrTaskNotOngoing
	}
	if !task.IsSeeker(actor.ID) {
		return nil, ErrNotTaskSeeker
	}

	url, err := s.store.Save(ctx, r, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store proof image: %w", err)
	}

	err = s.transition(ctx, id, repository.TransitionGuard{
		From:     models.TaskStatusOngoing,
		SeekerID: &actor.ID,
	}, map[string]any{
		"proof_image": url,
	})
	if err != nil {
		s.removeProof(ctx, url)
		return nil, err
	}

	if task.ProofImage != nil && *task.ProofImage != url {
		s.removeProof(ctx, *task.ProofImage)
	}

	s.notifyTask(ctx, task, task.PosterID, actor, models.TaskStatusOngoing,
		"Proof Uploaded",
		fmt.Sprintf("Proof of completion was uploaded for your task '%s'.", task.Title))

	return s.reload(ctx, id)
}

// Complete moves an ongoing task with proof to pending confirmation
func (s *TaskService) Complete(ctx context.Context, actor *models.User, id uint64) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusOngoing {
		return nil, ErrTaskNotOngoing
	}
	// Proof is checked before the actor so a missing image is reported to anyone.
	if task.ProofImage == nil || *task.ProofImage == "" {
		return nil, ErrProofRequired
	}
	if !task.IsSeeker(actor.ID) {
		return nil, ErrNotTaskSeeker
	}

	err = s.transition(ctx, id, repository.TransitionGuard{
		From:         models.TaskStatusOngoing,
		SeekerID:     &actor.ID,
		RequireProof: true,
	}, map[string]any{
		"status": models.TaskStatusPendingConfirmation,
	})
	if err != nil {
		return nil, err
	}

	s.notifyTask(ctx, task, task.PosterID, actor, models.TaskStatusPendingConfirmation,
		"Task Completed",
		fmt.Sprintf("Your task '%s' has been marked as completed. Please confirm.", task.Title))

	return s.reload(ctx, id)
}

// Confirm finalizes a task awaiting the poster's confirmation
func (s *TaskService) Confirm(ctx context.Context, actor *models.User, id uint64) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusPendingConfirmation {
		return nil, ErrTaskNotPendingConfirmation
	}
	if task.PosterID != actor.ID {
		return nil, ErrNotTaskPoster
	}

	err = s.transition(ctx, id, repository.TransitionGuard{
		From:     models.TaskStatusPendingConfirmation,
		SeekerID: task.SeekerID,
	}, map[string]any{
		"status":       models.TaskStatusCompleted,
		"completed_at": s.now(),
	})
	if err != nil {
		return nil, err
	}

	if task.SeekerID != nil {
		s.notifyTask(ctx, task, *task.SeekerID, actor, models.TaskStatusCompleted,
			"Task Confirmed",
			fmt.Sprintf("The completion of task '%s' has been confirmed. Payment should be released.", task.Title))
	}

	return s.reload(ctx, id)
}

// Cancel ends or releases a task. A seeker backing out of an ongoing task reopens it;
// a poster cancelling ends it.
func (s *TaskService) Cancel(ctx context.Context, actor *models.User, id uint64) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	guard := repository.TransitionGuard{From: task.Status}
	changes := map[string]any{
		"seeker_id":   nil,
		"accepted_at": nil,
	}

	var (
		next      models.TaskStatus
		recipient *uint64
		message   string
	)

	switch task.Status {
	case models.TaskStatusAvailable:
		if task.PosterID != actor.ID {
			return nil, ErrNotTaskPoster
		}
		next = models.TaskStatusCancelled

	case models.TaskStatusOngoing:
		if !task.IsParticipant(actor.ID) {
			return nil, ErrNotTaskParticipant
		}
		guard.SeekerID = task.SeekerID
		changes["proof_image"] = nil

		if task.IsSeeker(actor.ID) && task.PosterID != actor.ID {
			next = models.TaskStatusAvailable
			recipient = &task.PosterID
			message = fmt.Sprintf("The task '%s' has been cancelled by the seeker and is available again.", task.Title)
		} else {
			next = models.TaskStatusCancelled
			if task.SeekerID != nil && *task.SeekerID != actor.ID {
				recipient = task.SeekerID
				message = fmt.Sprintf("The task '%s' has been cancelled by the poster.", task.Title)
			}
		}

	default:
		return nil, ErrTaskNotCancellable
	}

	changes["status"] = next
	if err := s.transition(ctx, id, guard, changes); err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusOngoing && task.ProofImage != nil {
		s.removeProof(ctx, *task.ProofImage)
	}
	if recipient != nil {
		s.notifyTask(ctx, task, *recipient, actor, next, "Task Cancelled", message)
	}

	return s.reload(ctx, id)
}

func (s *TaskService) find(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) reload(ctx context.Context, id uint64) (*models.Task, error) {
	return s.find(ctx, id, detailPreloads...)
}

func (s *TaskService) transition(ctx context.Context, id uint64, guard repository.TransitionGuard, changes map[string]any) error {
	if err := s.taskRepo.Transition(ctx, id, guard, changes); err != nil {
		if errors.Is(err, repository.ErrTransitionConflict) {
			return ErrTransitionConflict
		}
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return nil
}

func (s *TaskService) notifyTask(ctx context.Context, task *models.Task, recipientID uint64, actor *models.User, status models.TaskStatus, title, message string) {
	if s.notifier == nil {
		return
	}
	taskID := task.ID
	s.notifier.Notify(ctx, NotifyInput{
		UserID:  recipientID,
		TaskID:  &taskID,
		Title:   title,
		Message: message,
		Type:    models.NotificationTypeTaskUpdate,
		Data: map[string]any{
			"task_status": string(status),
			"actor_id":    actor.ID,
		},
	})
}

func (s *TaskService) removeProof(ctx context.Context, url string) {
	if s.store == nil {
		return
	}
	if err := s.store.Remove(ctx, url); err != nil {
		slog.WarnContext(ctx, "failed to remove proof image", slog.String("url", url), slog.Any("err", err))
	}
}

// buildLocations orders locations by their explicit index, falling back to
// submission order, and renumbers them from zero.
func buildLocations(in []LocationInput) ([]models.TaskLocation, error) {
	type ranked struct {
		rank int
		loc  LocationInput
	}

	items := make([]ranked, len(in))
	for i, loc := range in {
		if !validCoordinates(loc.Lat, loc.Lng) {
			return nil, ErrInvalidCoordinates
		}
		rank := i
		if loc.Idx != nil {
			rank = *loc.Idx
		}
		items[i] = ranked{rank: rank, loc: loc}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		return a.rank - b.rank
	})

	locations := make([]models.TaskLocation, len(items))
	for i, item := range items {
		locations[i] = models.TaskLocation{
			Idx:     i,
			Lat:     item.loc.Lat,
			Lng:     item.loc.Lng,
			Address: item.loc.Address,
		}
	}
	return locations, nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
