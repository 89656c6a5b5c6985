package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eezystore/eezystore-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func setupAuthTestRouter(authMiddleware *AuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append([]gin.HandlerFunc{authMiddleware.Authenticate()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	router.GET("/protected", handlers...)

	return router
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authMiddleware := NewAuthMiddleware(testSecret)
	router := setupAuthTestRouter(authMiddleware)

	tokens, err := util.GenerateTokenPair(1, "user@example.com", "customer", testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "Valid token",
			authHeader: "Bearer " + tokens.AccessToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Malformed header",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage token",
			authHeader: "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	authMiddleware := NewAuthMiddleware(testSecret)
	router := setupAuthTestRouter(authMiddleware)

	expired, err := util.GenerateAccessToken(1, "user@example.com", "customer", testSecret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	authMiddleware := NewAuthMiddleware(testSecret)
	router := setupAuthTestRouter(authMiddleware, authMiddleware.RequireRole("admin"))

	adminTokens, err := util.GenerateTokenPair(1, "admin@example.com", "admin", testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	customerTokens, err := util.GenerateTokenPair(2, "user@example.com", "customer", testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	t.Run("Admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Customer is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+customerTokens.AccessToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
