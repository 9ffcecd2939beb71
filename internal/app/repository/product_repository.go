package repository

import (
	"strings"

	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows catalog search. Zero values disable a criterion.
type ProductFilter struct {
	Search     string
	CategoryID *uint
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindDetailByID(id uint) (*model.Product, error)
	FindByOwnerID(ownerID uint) ([]model.Product, error)
	Search(filter ProductFilter) ([]model.ProductSummary, error)
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":       product.Title,
		"owner_id":    product.OwnerID,
		"category_id": product.CategoryID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title":       product.Title,
			"owner_id":    product.OwnerID,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"owner_id":   product.OwnerID,
	})
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		logLookupError("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindDetailByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Preload("Category").
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		First(&product, id).Error
	if err != nil {
		logLookupError("Failed to find product detail in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByOwnerID(ownerID uint) ([]model.Product, error) {
	logger.Debug("Finding products by owner in database", map[string]interface{}{
		"owner_id": ownerID,
	})

	var products []model.Product
	if err := r.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products by owner in database", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}

	logger.Debug("Products found by owner in database", map[string]interface{}{
		"owner_id": ownerID,
		"count":    len(products),
	})
	return products, nil
}

func (r *productRepository) Search(filter ProductFilter) ([]model.ProductSummary, error) {
	logger.Debug("Searching products in database", map[string]interface{}{
		"search":      filter.Search,
		"category_id": filter.CategoryID,
	})

	query := r.db.Model(&model.Product{})
	if filter.Search != "" {
		query = query.Where(`title LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Search)+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	summaries := []model.ProductSummary{}
	if err := query.Order("id DESC").Find(&summaries).Error; err != nil {
		logger.Error("Failed to search products in database", err, map[string]interface{}{
			"search":      filter.Search,
			"category_id": filter.CategoryID,
		})
		return nil, err
	}

	logger.Debug("Products searched in database", map[string]interface{}{
		"count": len(summaries),
	})
	return summaries, nil
}

// Update writes only the given columns. A map is used so that zero values
// such as a price of 0 are written too.
func (r *productRepository) Update(id uint, fields map[string]interface{}) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": id,
		"fields":     len(fields),
	})

	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// Delete removes the product from the catalog and from every cart. The row is
// soft-deleted so that order history can still resolve it.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
