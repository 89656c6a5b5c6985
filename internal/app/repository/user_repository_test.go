package repository

import (
	"testing"
	"time"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserRepoTest(t *testing.T) UserRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewUserRepository(testDB)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := setupUserRepoTest(t)

	user := &model.User{
		Email:        "jane@example.com",
		PasswordHash: "hash",
		FirstName:    "Jane",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail("jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.False(t, byEmail.IsActive, "accounts start inactive")

	_, err = repo.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_SetActive(t *testing.T) {
	repo := setupUserRepoTest(t)

	user := &model.User{Email: "jane@example.com", PasswordHash: "hash", FirstName: "Jane", Role: model.RoleCustomer}
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.SetActive(user.ID, true))
	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsActive)

	require.NoError(t, repo.SetActive(user.ID, false))
	found, err = repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	repo := setupUserRepoTest(t)

	user := &model.User{Email: "jane@example.com", PasswordHash: "hash", FirstName: "Jane", Role: model.RoleCustomer}
	require.NoError(t, repo.Create(user))
	require.Nil(t, user.LastLoginAt)

	now := time.Now()
	require.NoError(t, repo.UpdateLastLogin(user.ID, now))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.WithinDuration(t, now, *found.LastLoginAt, time.Second)
}

func TestUserRepository_FindByRole(t *testing.T) {
	repo := setupUserRepoTest(t)

	require.NoError(t, repo.Create(&model.User{Email: "c1@example.com", PasswordHash: "h", FirstName: "C1", Role: model.RoleCustomer}))
	require.NoError(t, repo.Create(&model.User{Email: "c2@example.com", PasswordHash: "h", FirstName: "C2", Role: model.RoleCustomer}))
	require.NoError(t, repo.Create(&model.User{Email: "a@example.com", PasswordHash: "h", FirstName: "A", Role: model.RoleAdmin}))

	customers, err := repo.FindByRole(model.RoleCustomer)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	admins, err := repo.FindByRole(model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}
