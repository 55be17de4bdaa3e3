package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/taskerrand-api/internal/models"
)

// TaskLocationDTO represents one auxiliary location of a task
type TaskLocationDTO struct {
	ID        uint64    `json:"id"`
	Idx       int       `json:"idx"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Payment         decimal.Decimal   `json:"payment"`
	ContactNumber   string            `json:"contact_number"`
	LocationLat     float64           `json:"location_lat"`
	LocationLng     float64           `json:"location_lng"`
	LocationAddress string            `json:"location_address"`
	Locations       []TaskLocationDTO `json:"locations"`
	Schedule        *time.Time        `json:"schedule"`
	Status          models.TaskStatus `json:"status"`
	PosterID        uint64            `json:"poster_id"`
	SeekerID        *uint64           `json:"seeker_id"`
	Seeker          *UserSummaryDTO   `json:"seeker,omitempty"`
	ProofImage      *string           `json:"proof_image"`
	ReportCount     int64             `json:"report_count"`
	Feedback        *FeedbackDTO      `json:"feedback,omitempty"`
	AcceptedAt      *time.Time        `json:"accepted_at"`
	CompletedAt     *time.Time        `json:"completed_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Payment:         task.Payment,
		ContactNumber:   task.ContactNumber,
		LocationLat:     task.LocationLat,
		LocationLng:     task.LocationLng,
		LocationAddress: task.LocationAddress,
		Locations:       make([]TaskLocationDTO, len(task.Locations)),
		Schedule:        task.Schedule,
		Status:          task.Status,
		PosterID:        task.PosterID,
		SeekerID:        task.SeekerID,
		ProofImage:      task.ProofImage,
		AcceptedAt:      task.AcceptedAt,
		CompletedAt:     task.CompletedAt,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}

	for i, loc := range task.Locations {
		dto.Locations[i] = TaskLocationDTO{
			ID:        loc.ID,
			Idx:       loc.Idx,
			Lat:       loc.Lat,
			Lng:       loc.Lng,
			Address:   loc.Address,
			CreatedAt: loc.CreatedAt,
		}
	}

	// Include seeker if preloaded
	if task.Seeker != nil {
		seeker := ToUserSummaryDTO(*task.Seeker)
		dto.Seeker = &seeker
	}

	// Include feedback if preloaded
	if task.Feedback != nil {
		fb := ToFeedbackDTO(*task.Feedback)
		dto.Feedback = &fb
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
