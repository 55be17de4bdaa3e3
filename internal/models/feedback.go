package models

import "time"

type Feedback struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"uniqueIndex;not null" json:"task_id"`
	PosterID  uint64    `gorm:"not null" json:"poster_id"`
	SeekerID  uint64    `gorm:"not null;index" json:"seeker_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Poster User `gorm:"foreignKey:PosterID" json:"-"`
	Seeker User `gorm:"foreignKey:SeekerID" json:"-"`
}

// TableName keeps the singular table name used by existing deployments.
func (Feedback) TableName() string {
	return "feedback"
}
