package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-backend/internal/app/repository"
	"github.com/ikkim/marketplace-backend/internal/app/service"
	"github.com/ikkim/marketplace-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	testDB := setupTestDB(t)
	authService := service.NewAuthService(repository.NewUserRepository(testDB), testJWTSecret, time.Hour)
	ctrl := NewAuthController(authService)

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.GET("/me", authMiddleware(), ctrl.GetMe)
	router.PUT("/me", authMiddleware(), ctrl.UpdateMe)

	return router, authService
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := performRequest(t, router, http.MethodPost, "/register", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
		"username": "tester",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := util.ValidateToken(resp.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestAuthController_Register_Invalid(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"invalid email", map[string]string{"email": "invalid-email", "password": "password123", "username": "tester"}},
		{"short password", map[string]string{"email": "a@example.com", "password": "123", "username": "tester"}},
		{"missing username", map[string]string{"email": "a@example.com", "password": "password123"}},
		{"malformed json", "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, router, http.MethodPost, "/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_INVALID_INPUT", errorCode(t, w))
		})
	}
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register(service.RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Username: "first",
	})
	require.NoError(t, err)

	w := performRequest(t, router, http.MethodPost, "/register", "", map[string]string{
		"email":    "test@example.com",
		"password": "password456",
		"username": "second",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "AUTH_EMAIL_EXISTS", errorCode(t, w))
}

func TestAuthController_Login(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	user, _, err := authService.Register(service.RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Username: "tester",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPost, "/login", "", map[string]string{
			"email":    "test@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		claims, err := util.ValidateToken(resp.Token, testJWTSecret)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPost, "/login", "", map[string]string{
			"email":    "test@example.com",
			"password": "wrongpass",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTH_INVALID_CREDENTIALS", errorCode(t, w))
	})

	t.Run("Unknown email", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPost, "/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTH_INVALID_CREDENTIALS", errorCode(t, w))
	})
}

func TestAuthController_Me(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, token, err := authService.Register(service.RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Username: "tester",
	})
	require.NoError(t, err)

	t.Run("Get", func(t *testing.T) {
		w := performRequest(t, router, http.MethodGet, "/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var user map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "test@example.com", user["email"])
		assert.Equal(t, "tester", user["username"])
		assert.NotContains(t, user, "passwordHash")
	})

	t.Run("Update username", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPut, "/me", token, map[string]string{"username": "renamed"})
		require.Equal(t, http.StatusOK, w.Code)

		var user map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "renamed", user["username"])
	})

	t.Run("Update with short username", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPut, "/me", token, map[string]string{"username": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Deleted account", func(t *testing.T) {
		ghost, err := util.GenerateToken(999, "ghost@example.com", testJWTSecret, time.Hour)
		require.NoError(t, err)
		w := performRequest(t, router, http.MethodGet, "/me", ghost, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
