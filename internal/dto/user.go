package dto

import (
	"time"

	"github.com/yukikurage/taskerrand-api/internal/models"
)

// UserDTO represents a user profile in API responses
type UserDTO struct {
	ID            uint64    `json:"id"`
	ExternalID    string    `json:"external_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PhotoURL      string    `json:"photo_url"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserSummaryDTO is the compact form embedded in other resources
type UserSummaryDTO struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// ToUserDTO converts a User model to UserDTO. isAdmin comes from the admin policy.
func ToUserDTO(user models.User, isAdmin bool) UserDTO {
	return UserDTO{
		ID:            user.ID,
		ExternalID:    user.ExternalID,
		Email:         user.Email,
		Name:          user.DisplayName(),
		PhotoURL:      user.PhotoURL,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Address:       user.Address,
		ContactNumber: user.ContactNumber,
		IsAdmin:       isAdmin,
		CreatedAt:     user.CreatedAt,
	}
}

func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.DisplayName(),
		PhotoURL: user.PhotoURL,
	}
}
