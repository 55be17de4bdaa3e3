package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskerrand-api/internal/authz"
	"github.com/yukikurage/taskerrand-api/internal/identity"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"github.com/yukikurage/taskerrand-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles the local user directory.
type UserService struct {
	userRepo repository.UserRepository
	policy   *authz.AdminPolicy
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, policy *authz.AdminPolicy) *UserService {
	return &UserService{
		userRepo: userRepo,
		policy:   policy,
	}
}

// UpdateProfileInput represents the editable profile fields. Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name          *string
	FirstName     *string
	LastName      *string
	Address       *string
	ContactNumber *string
}

// Resolve returns the local user for a verified identity, creating it on first sight.
func (s *UserService) Resolve(ctx context.Context, ident *identity.Identity) (*models.User, error) {
	if ident == nil || ident.ExternalID == "" || ident.Email == "" {
		return nil, ErrInvalidIdentity
	}

	user, err := s.userRepo.FindByExternalID(ctx, ident.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user = &models.User{
		ExternalID: ident.ExternalID,
		Email:      ident.Email,
		Name:       ident.DisplayName,
		PhotoURL:   ident.AvatarURL,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		// A concurrent request created the same user first.
		existing, findErr := s.userRepo.FindByExternalID(ctx, ident.ExternalID)
		if findErr != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return existing, nil
	}

	return user, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, input UpdateProfileInput) (*models.User, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setTrimmed := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}
	setTrimmed("name", input.Name)
	setTrimmed("first_name", input.FirstName)
	setTrimmed("last_name", input.LastName)
	setTrimmed("address", input.Address)
	setTrimmed("contact_number", input.ContactNumber)

	if err := s.userRepo.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.Get(ctx, userID)
}

// IsAdmin reports whether the user currently holds admin privilege.
func (s *UserService) IsAdmin(user *models.User) bool {
	return s.policy.IsAdmin(user)
}

// ListAll lists every user. Admin only.
func (s *UserService) ListAll(ctx context.Context, actor *models.User, page utils.PaginationParams) ([]models.User, int64, error) {
	if !s.policy.IsAdmin(actor) {
		return nil, 0, ErrAdminRequired
	}

	users, total, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
