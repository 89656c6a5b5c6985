package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/internal/db"
	"github.com/eezystore/eezystore-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBlacklist is an in-memory TokenBlacklist for tests.
type memoryBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{tokens: make(map[string]time.Time)}
}

func (b *memoryBlacklist) Add(_ context.Context, token string, expiry time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = time.Now().Add(expiry)
	return nil
}

func (b *memoryBlacklist) Contains(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	expiry, ok := b.tokens[token]
	return ok && time.Now().Before(expiry), nil
}

func setupAuthServiceTest(t *testing.T) (AuthService, repository.UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(
		userRepo,
		newMemoryBlacklist(),
		"test-jwt-secret",
		15*time.Minute,
		24*time.Hour,
	)

	return authService, userRepo
}

func TestAuthService_Signup(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	t.Run("Valid signup creates inactive customer", func(t *testing.T) {
		user, err := authService.Signup("jane@example.com", "password123", "password123", "Jane", "Doe")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, model.RoleCustomer, user.Role)
		assert.False(t, user.IsActive)
		assert.Nil(t, user.LastLoginAt)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("Password confirmation mismatch", func(t *testing.T) {
		user, err := authService.Signup("john@example.com", "password123", "different", "John", "Doe")
		assert.ErrorIs(t, err, ErrPasswordNotConfirm)
		assert.Nil(t, user)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		user, err := authService.Signup("jane@example.com", "password456", "password456", "Jane", "Again")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.Nil(t, user)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService, userRepo := setupAuthServiceTest(t)

	signedUp, err := authService.Signup("jane@example.com", "password123", "password123", "Jane", "Doe")
	require.NoError(t, err)

	t.Run("Account not found", func(t *testing.T) {
		_, _, err := authService.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := authService.Login("jane@example.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("Pending approval", func(t *testing.T) {
		_, _, err := authService.Login("jane@example.com", "password123")
		assert.ErrorIs(t, err, ErrAccountNotApproved)
	})

	t.Run("Approved account logs in and records the login", func(t *testing.T) {
		require.NoError(t, userRepo.SetActive(signedUp.ID, true))

		user, tokens, err := authService.Login("jane@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotNil(t, user.LastLoginAt)

		stored, err := userRepo.FindByID(signedUp.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("Blocked account is told it was blocked", func(t *testing.T) {
		// An inactive account with a login history was blocked, not pending
		require.NoError(t, userRepo.SetActive(signedUp.ID, false))

		_, _, err := authService.Login("jane@example.com", "password123")
		assert.ErrorIs(t, err, ErrAccountBlocked)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	authService, userRepo := setupAuthServiceTest(t)

	hash, err := util.HashPassword("adminpass")
	require.NoError(t, err)
	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: hash,
		FirstName:    "Admin",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, userRepo.Create(admin))

	customer, err := authService.Signup("jane@example.com", "password123", "password123", "Jane", "Doe")
	require.NoError(t, err)
	require.NoError(t, userRepo.SetActive(customer.ID, true))

	t.Run("Admin logs in", func(t *testing.T) {
		user, tokens, err := authService.AdminLogin("admin@example.com", "adminpass")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Customer rejected from admin login", func(t *testing.T) {
		_, _, err := authService.AdminLogin("jane@example.com", "password123")
		assert.ErrorIs(t, err, ErrNotAdmin)
	})
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	authService, userRepo := setupAuthServiceTest(t)
	ctx := context.Background()

	user, err := authService.Signup("jane@example.com", "password123", "password123", "Jane", "Doe")
	require.NoError(t, err)
	require.NoError(t, userRepo.SetActive(user.ID, true))

	_, tokens, err := authService.Login("jane@example.com", "password123")
	require.NoError(t, err)

	t.Run("Refresh with valid token", func(t *testing.T) {
		accessToken, err := authService.RefreshAccessToken(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("Refresh with garbage token", func(t *testing.T) {
		_, err := authService.RefreshAccessToken(ctx, "garbage")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("Refresh with access token", func(t *testing.T) {
		_, err := authService.RefreshAccessToken(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("Logout revokes the refresh token", func(t *testing.T) {
		require.NoError(t, authService.Logout(ctx, tokens.RefreshToken))

		_, err := authService.RefreshAccessToken(ctx, tokens.RefreshToken)
		assert.ErrorIs(t, err, ErrRefreshTokenRevoked)
	})
}
