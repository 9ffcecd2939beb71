package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/internal/db"
	"github.com/ikkim/marketplace-backend/internal/middleware"
	"github.com/ikkim/marketplace-backend/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedCategories(testDB))
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func authMiddleware() gin.HandlerFunc {
	return middleware.NewAuthMiddleware(testJWTSecret).Authenticate()
}

func createUser(t *testing.T, testDB *gorm.DB, email string) (*model.User, string) {
	hash, err := util.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{Email: email, PasswordHash: hash, Username: "user"}
	require.NoError(t, testDB.Create(user).Error)

	token, err := util.GenerateToken(user.ID, user.Email, testJWTSecret, time.Hour)
	require.NoError(t, err)
	return user, token
}

func categoryID(t *testing.T, testDB *gorm.DB, name string) uint {
	var category model.Category
	require.NoError(t, testDB.Where("name = ?", name).First(&category).Error)
	return category.ID
}

func createProduct(t *testing.T, testDB *gorm.DB, ownerID uint, title, price string) *model.Product {
	product := &model.Product{
		Title:       title,
		Description: "about " + title,
		Price:       decimal.RequireFromString(price),
		ImageURL:    model.PlaceholderImageURL,
		OwnerID:     ownerID,
		CategoryID:  categoryID(t, testDB, "Electronics"),
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func performRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}
