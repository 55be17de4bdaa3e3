package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusAvailable           TaskStatus = "available"
	TaskStatusOngoing             TaskStatus = "ongoing"
	TaskStatusPendingConfirmation TaskStatus = "pending_confirmation"
	TaskStatusCompleted           TaskStatus = "completed"
	TaskStatusCancelled           TaskStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusAvailable, TaskStatusOngoing, TaskStatusPendingConfirmation,
		TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

type Task struct {
	ID              uint64          `gorm:"primarykey" json:"id"`
	Title           string          `gorm:"type:varchar(255);not null" json:"title"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Payment         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"payment"`
	ContactNumber   string          `gorm:"type:varchar(50)" json:"contact_number"`
	LocationLat     float64         `gorm:"not null" json:"location_lat"`
	LocationLng     float64         `gorm:"not null" json:"location_lng"`
	LocationAddress string          `gorm:"type:varchar(512)" json:"location_address"`
	Schedule        *time.Time      `json:"schedule"`
	Status          TaskStatus      `gorm:"type:varchar(32);not null;default:'available'" json:"status"`
	PosterID        uint64          `gorm:"not null" json:"poster_id"`
	SeekerID        *uint64         `json:"seeker_id"`
	ProofImage      *string         `gorm:"type:varchar(1024)" json:"proof_image"`
	AcceptedAt      *time.Time      `json:"accepted_at"`
	CompletedAt     *time.Time      `json:"completed_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	Poster    User           `gorm:"foreignKey:PosterID" json:"-"`
	Seeker    *User          `gorm:"foreignKey:SeekerID" json:"-"`
	Locations []TaskLocation `gorm:"foreignKey:TaskID" json:"-"`
	Feedback  *Feedback      `gorm:"foreignKey:TaskID" json:"-"`
}

// IsParticipant reports whether userID is the poster or the current seeker.
func (t *Task) IsParticipant(userID uint64) bool {
	return t.PosterID == userID || t.IsSeeker(userID)
}

// IsSeeker reports whether userID is the currently assigned seeker.
func (t *Task) IsSeeker(userID uint64) bool {
	return t.SeekerID != nil && *t.SeekerID == userID
}

// TaskLocation is one entry of a task's ordered auxiliary location list.
type TaskLocation struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Idx       int       `gorm:"not null" json:"idx"`
	Lat       float64   `gorm:"not null" json:"lat"`
	Lng       float64   `gorm:"not null" json:"lng"`
	Address   string    `gorm:"type:varchar(512)" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
