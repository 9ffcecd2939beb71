package service

import (
	"testing"

	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedCategories(testDB))
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createUser(t *testing.T, testDB *gorm.DB, email, username string) *model.User {
	user := &model.User{
		Email:        email,
		PasswordHash: "hash",
		Username:     username,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func categoryID(t *testing.T, testDB *gorm.DB, name string) uint {
	var category model.Category
	require.NoError(t, testDB.Where("name = ?", name).First(&category).Error)
	return category.ID
}

func createProduct(t *testing.T, testDB *gorm.DB, ownerID, categoryID uint, title, price string) *model.Product {
	product := &model.Product{
		Title:       title,
		Description: "about " + title,
		Price:       decimal.RequireFromString(price),
		ImageURL:    model.PlaceholderImageURL,
		OwnerID:     ownerID,
		CategoryID:  categoryID,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}
