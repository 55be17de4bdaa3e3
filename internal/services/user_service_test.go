package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskerrand-api/internal/authz"
	"github.com/yukikurage/taskerrand-api/internal/identity"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"github.com/yukikurage/taskerrand-api/internal/testutil"
	"github.com/yukikurage/taskerrand-api/internal/utils"
	"gorm.io/gorm"
)

func TestUserService_Resolve(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	service := NewUserService(repository.NewUserRepository(db), authz.NewAdminPolicy(nil))

	ident := &identity.Identity{
		ExternalID:  "uid-123",
		Email:       "new@example.com",
		DisplayName: "New User",
		AvatarURL:   "https://example.com/a.png",
	}

	created, err := service.Resolve(ctx, ident)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "New User", created.Name)
	assert.Equal(t, "https://example.com/a.png", created.PhotoURL)
	assert.False(t, created.IsAdmin)

	again, err := service.Resolve(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = service.Resolve(ctx, &identity.Identity{ExternalID: "uid-456"})
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

// simultaneous first sight: the insert loses on the unique index and the row is re-read
func TestUserService_ResolveAfterDuplicateInsert(t *testing.T) {
	db := testutil.NewDB(t)
	existing := testutil.CreateUser(t, db, "dup@example.com")

	repo := &lateUserRepo{UserRepository: repository.NewUserRepository(db)}
	service := NewUserService(repo, authz.NewAdminPolicy(nil))

	user, err := service.Resolve(context.Background(), &identity.Identity{
		ExternalID: existing.ExternalID,
		Email:      existing.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}

func TestUserService_AdminIsEvaluatedPerCheck(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(db)

	user := testutil.CreateUser(t, db, "boss@example.com")

	before := NewUserService(repo, authz.NewAdminPolicy(nil))
	assert.False(t, before.IsAdmin(user))
	_, _, err := before.ListAll(ctx, user, utils.PaginationParams{})
	assert.ErrorIs(t, err, ErrAdminRequired)

	after := NewUserService(repo, authz.NewAdminPolicy([]string{"boss@example.com"}))
	assert.True(t, after.IsAdmin(user))
	users, total, err := after.ListAll(ctx, user, utils.PaginationParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
}

func TestUserService_UpdateProfile(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	service := NewUserService(repository.NewUserRepository(db), authz.NewAdminPolicy(nil))

	user := testutil.CreateUser(t, db, "profile@example.com")
	first, phone := " Ada ", "+81 90 0000 0000"

	updated, err := service.UpdateProfile(ctx, user.ID, UpdateProfileInput{
		FirstName:     &first,
		ContactNumber: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, phone, updated.ContactNumber)
	assert.Equal(t, user.Name, updated.Name)

	_, err = service.UpdateProfile(ctx, 9999, UpdateProfileInput{FirstName: &first})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// lateUserRepo hides the existing row from the first lookup, as if it was
// inserted between the lookup and the insert.
type lateUserRepo struct {
	repository.UserRepository
	lookups int
}

func (r *lateUserRepo) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.UserRepository.FindByExternalID(ctx, externalID)
}
