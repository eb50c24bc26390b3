package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		ID:           uuid.New(),
		Email:        "operator@city.gov.vn",
		Name:         "City Operator",
		PasswordHash: "$2a$12$hash",
		Role:         entities.UserRoleOperator,
	}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.FindByEmail(ctx, "operator@city.gov.vn")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, entities.UserRoleOperator, byEmail.Role)

	_, err = repo.FindByEmail(ctx, "ghost@city.gov.vn")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		ID:           uuid.New(),
		Email:        "admin@city.gov.vn",
		Name:         "Admin",
		PasswordHash: "$2a$12$hash",
		Role:         entities.UserRoleAdmin,
	}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Platform Admin"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform Admin", got.Name)

	missing := &entities.User{ID: uuid.New(), Role: entities.UserRoleUser}
	assert.ErrorIs(t, repo.Update(ctx, missing), domainerrors.ErrNotFound)
}
