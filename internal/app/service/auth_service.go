package service

import (
	"context"
	"errors"
	"time"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"github.com/eezystore/eezystore-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrPasswordNotConfirm  = errors.New("password fields did not match")
	ErrAccountNotFound     = errors.New("account not found")
	ErrPasswordMismatch    = errors.New("incorrect password")
	ErrAccountNotApproved  = errors.New("account is awaiting admin approval")
	ErrAccountBlocked      = errors.New("account has been blocked")
	ErrNotAdmin            = errors.New("account is not an admin")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
)

// TokenBlacklist is the revocation store for refresh tokens. Production
// wiring uses the redis-backed implementation in pkg/redis.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiry time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

type AuthService interface {
	Signup(email, password, passwordConfirm, firstName, lastName string) (*model.User, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	AdminLogin(email, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	blacklist     TokenBlacklist
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	blacklist TokenBlacklist,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		blacklist:     blacklist,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Signup creates an inactive customer account. The user cannot log in
// until an admin approves the account.
func (s *authService) Signup(email, password, passwordConfirm, firstName, lastName string) (*model.User, error) {
	logger.Info("Attempting user signup", map[string]interface{}{
		"email": email,
	})

	if password != passwordConfirm {
		logger.Warn("Signup failed: password confirmation mismatch", map[string]interface{}{
			"email": email,
		})
		return nil, ErrPasswordNotConfirm
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Signup failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         model.RoleCustomer,
		IsActive:     false,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("User signed up successfully, awaiting approval", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, nil
}

// Login authenticates a customer. Failure modes are distinct so the
// client can tell a pending account from a blocked one: an inactive user
// that has never logged in is awaiting approval, while an inactive user
// with a login history was blocked by an admin.
func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: account not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrAccountNotFound
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: incorrect password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrPasswordMismatch
	}

	if !user.IsActive {
		if user.LastLoginAt == nil {
			logger.Warn("Login failed: account not yet approved", map[string]interface{}{
				"email":   email,
				"user_id": user.ID,
			})
			return nil, nil, ErrAccountNotApproved
		}
		logger.Warn("Login failed: account blocked", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrAccountBlocked
	}

	return s.issueTokens(user)
}

// AdminLogin authenticates an admin account for the admin panel.
func (s *authService) AdminLogin(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Admin login failed: account not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrAccountNotFound
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Admin login failed: incorrect password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrPasswordMismatch
	}

	if user.Role != model.RoleAdmin {
		logger.Warn("Admin login failed: not an admin account", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrNotAdmin
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *model.User) (*model.User, *util.TokenPair, error) {
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastLoginAt = &now

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})
	return user, tokens, nil
}

// Logout blacklists the refresh token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := util.ValidateRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		logger.Warn("Logout with invalid refresh token", map[string]interface{}{
			"error": err.Error(),
		})
		return ErrInvalidRefreshToken
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return ErrInvalidRefreshToken
	}

	if err := s.blacklist.Add(ctx, refreshToken, remaining); err != nil {
		logger.Error("Failed to blacklist refresh token on logout", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return err
	}

	logger.Info("User logged out successfully", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

// RefreshAccessToken exchanges a valid, non-revoked refresh token for a
// fresh access token.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := util.ValidateRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		logger.Warn("Token refresh with invalid token", map[string]interface{}{
			"error": err.Error(),
		})
		return "", ErrInvalidRefreshToken
	}

	revoked, err := s.blacklist.Contains(ctx, refreshToken)
	if err != nil {
		logger.Error("Failed to check refresh token blacklist", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return "", err
	}
	if revoked {
		logger.Warn("Token refresh with revoked token", map[string]interface{}{
			"user_id": claims.UserID,
		})
		return "", ErrRefreshTokenRevoked
	}

	accessToken, err := util.GenerateAccessToken(
		claims.UserID,
		claims.Email,
		claims.Role,
		s.jwtSecret,
		s.accessExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate access token", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return "", err
	}

	logger.Debug("Access token refreshed successfully", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return accessToken, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
