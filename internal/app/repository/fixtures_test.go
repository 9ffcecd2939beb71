package repository

import (
	"testing"

	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedCategories(testDB))
	return testDB
}

func createTestUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	user := &model.User{
		Email:        email,
		PasswordHash: "hash",
		Username:     "user-" + email,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func findCategory(t *testing.T, testDB *gorm.DB, name string) *model.Category {
	var category model.Category
	require.NoError(t, testDB.Where("name = ?", name).First(&category).Error)
	return &category
}

func createTestProduct(t *testing.T, testDB *gorm.DB, owner *model.User, categoryID uint, title, price string) *model.Product {
	product := &model.Product{
		Title:       title,
		Description: "description of " + title,
		Price:       decimal.RequireFromString(price),
		ImageURL:    model.PlaceholderImageURL,
		OwnerID:     owner.ID,
		CategoryID:  categoryID,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}
