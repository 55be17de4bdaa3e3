package models

import "time"

type User struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	ExternalID    string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"external_id"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name          string    `gorm:"type:varchar(255)" json:"name"`
	PhotoURL      string    `gorm:"type:varchar(1024)" json:"photo_url"`
	FirstName     string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName      string    `gorm:"type:varchar(255)" json:"last_name"`
	Address       string    `gorm:"type:varchar(512)" json:"address"`
	ContactNumber string    `gorm:"type:varchar(50)" json:"contact_number"`
	// IsAdmin is a manual grant only; the configured allow-list is checked separately.
	IsAdmin   bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	PostedTasks   []Task         `gorm:"foreignKey:PosterID" json:"-"`
	AcceptedTasks []Task         `gorm:"foreignKey:SeekerID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"-"`
}

// DisplayName returns the name shown to other users.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
