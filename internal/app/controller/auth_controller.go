package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/eezystore/eezystore-backend/internal/app/service"
	apperrors "github.com/eezystore/eezystore-backend/internal/errors"
	"github.com/eezystore/eezystore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const refreshTokenCookie = "refresh_token"

type AuthController struct {
	authService   service.AuthService
	refreshExpiry time.Duration
}

func NewAuthController(authService service.AuthService, refreshExpiry time.Duration) *AuthController {
	return &AuthController{
		authService:   authService,
		refreshExpiry: refreshExpiry,
	}
}

type SignupRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup handles customer registration
// POST /api/v1/customer/signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid signup request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid signup data")
		return
	}

	log.Debug("Processing signup", map[string]interface{}{
		"email": req.Email,
	})

	user, err := ctrl.authService.Signup(req.Email, req.Password, req.PasswordConfirm, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrPasswordNotConfirm) {
			apperrors.BadRequest(c, apperrors.AuthPasswordNotConfirm, "Password fields did not match")
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Signup failed: email already exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email is already registered")
			return
		}
		log.Error("Signup failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Failed to create account")
		return
	}

	log.Info("User signed up successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. An admin will review and approve it shortly",
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"is_active":  user.IsActive,
		},
	})
}

// Login handles customer login
// POST /api/v1/customer/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid login data")
		return
	}

	log.Debug("Processing login", map[string]interface{}{
		"email": req.Email,
	})

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		ctrl.respondLoginError(c, req.Email, err)
		return
	}

	ctrl.setRefreshCookie(c, tokens.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": tokens.AccessToken,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"role":       user.Role,
		},
	})
}

// AdminLogin handles admin panel login
// POST /api/v1/admin/login
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid admin login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid login data")
		return
	}

	log.Debug("Processing admin login", map[string]interface{}{
		"email": req.Email,
	})

	user, tokens, err := ctrl.authService.AdminLogin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			log.Warn("Admin login rejected: not an admin", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAdminOnly, "Admin accounts only")
			return
		}
		ctrl.respondLoginError(c, req.Email, err)
		return
	}

	ctrl.setRefreshCookie(c, tokens.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": tokens.AccessToken,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"role":       user.Role,
		},
	})
}

func (ctrl *AuthController) respondLoginError(c *gin.Context, email string, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthAccountNotFound, "No account found with this email")
	case errors.Is(err, service.ErrPasswordMismatch):
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthPasswordMismatch, "Incorrect password")
	case errors.Is(err, service.ErrAccountNotApproved):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthNotApproved, "Your account is awaiting admin approval")
	case errors.Is(err, service.ErrAccountBlocked):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthAccountBlocked, "Your account has been blocked")
	default:
		log.Error("Login failed", err, map[string]interface{}{
			"email": email,
		})
		apperrors.InternalError(c, "Login failed")
	}
}

// Logout revokes the refresh token and clears the cookie
// POST /api/v1/customer/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token := ctrl.extractRefreshToken(c)
	if token == "" {
		log.Debug("Logout called without a refresh token")
		ctrl.clearRefreshCookie(c)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
		return
	}

	// Logout always succeeds from the user's perspective
	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		log.Warn("Failed to revoke refresh token during logout", map[string]interface{}{
			"error": err.Error(),
		})
	}

	ctrl.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// RefreshToken exchanges the refresh token for a new access token
// POST /api/v1/customer/token/refresh
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token := ctrl.extractRefreshToken(c)
	if token == "" {
		log.Warn("Token refresh without a refresh token", nil)
		apperrors.Unauthorized(c, "Refresh token required")
		return
	}

	accessToken, err := ctrl.authService.RefreshAccessToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrRefreshTokenRevoked) {
			log.Warn("Token refresh failed: token revoked", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked, "Refresh token has been revoked. Please log in again")
			return
		}
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			log.Warn("Token refresh failed: invalid token", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid refresh token. Please log in again")
			return
		}
		log.Error("Failed to refresh token", err, nil)
		apperrors.InternalError(c, "Failed to refresh token")
		return
	}

	log.Info("Token refreshed successfully")

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
	})
}

// GetMe returns current user information
// GET /api/v1/customer/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "User not found")
			return
		}
		log.Error("Failed to get user information", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to get user information")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"role":          user.Role,
			"last_login_at": user.LastLoginAt,
		},
	})
}

// extractRefreshToken prefers the httponly cookie, falling back to the
// request body for clients that cannot send cookies.
func (ctrl *AuthController) extractRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshTokenCookie); err == nil && token != "" {
		return token
	}

	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (ctrl *AuthController) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, token, int(ctrl.refreshExpiry.Seconds()), "/", "", false, true)
}

func (ctrl *AuthController) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)
}
