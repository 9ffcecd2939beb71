package db

import (
	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	}
}

// Migrate creates or updates the schema.
func Migrate(handle *gorm.DB) error {
	logger.Info("Running database migrations...")

	all := models()
	if err := handle.AutoMigrate(all...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(all),
	})
	return nil
}

// SeedCategories inserts every default category that is not present yet.
// Existing rows are left untouched, so it is safe to run on each start.
func SeedCategories(handle *gorm.DB) error {
	logger.Info("Seeding default categories...")

	categories := make([]model.Category, 0, len(model.DefaultCategories))
	for _, name := range model.DefaultCategories {
		categories = append(categories, model.Category{Name: name})
	}

	result := handle.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&categories)
	if result.Error != nil {
		logger.Error("Failed to seed categories", result.Error)
		return result.Error
	}

	logger.Info("Default categories seeded", map[string]interface{}{
		"inserted": result.RowsAffected,
		"total":    len(model.DefaultCategories),
	})
	return nil
}
