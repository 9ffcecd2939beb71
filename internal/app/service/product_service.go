package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/internal/app/repository"
	"github.com/ikkim/marketplace-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductAccessDenied = errors.New("product access denied")
	ErrInvalidCategory     = fmt.Errorf("%w: category does not exist", ErrInvalidInput)
)

// maxPrice is the largest value a decimal(12,2) column holds.
var maxPrice = decimal.RequireFromString("9999999999.99")

type CreateProductInput struct {
	Title       string           `json:"title" validate:"required,min=2,max=200"`
	Description string           `json:"description" validate:"required,min=2"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	CategoryID  uint             `json:"categoryId" validate:"required"`
	ImageURL    string           `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductInput carries a partial update. Nil fields are left unchanged.
type UpdateProductInput struct {
	Title       *string          `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string          `json:"description" validate:"omitempty,min=2"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uint            `json:"categoryId" validate:"omitempty,min=1"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,url"`
}

type ProductSearchOptions struct {
	Query      string
	CategoryID *uint
}

type ProductService interface {
	CreateProduct(ownerID uint, input CreateProductInput) (*model.Product, error)
	ImportListings(ownerID uint, inputs []CreateProductInput) ([]model.Product, error)
	ListMyListings(ownerID uint) ([]model.Product, error)
	UpdateProduct(ownerID, id uint, input UpdateProductInput) (*model.Product, error)
	DeleteProduct(ownerID, id uint) error
	SearchProducts(opts ProductSearchOptions) ([]model.ProductSummary, error)
	GetProductByID(id uint) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) CreateProduct(ownerID uint, input CreateProductInput) (*model.Product, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	logger.Info("Creating product", map[string]interface{}{
		"owner_id":    ownerID,
		"title":       input.Title,
		"category_id": input.CategoryID,
	})

	if err := validateInput(input); err != nil {
		return nil, err
	}
	price, err := checkPrice(*input.Price)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}

	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = model.PlaceholderImageURL
	}

	product := &model.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		ImageURL:    imageURL,
		OwnerID:     ownerID,
		CategoryID:  input.CategoryID,
	}
	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"owner_id":   ownerID,
	})
	return product, nil
}

// ImportListings creates the listings in order and stops at the first
// invalid row. Rows before it stay created.
func (s *productService) ImportListings(ownerID uint, inputs []CreateProductInput) ([]model.Product, error) {
	created := make([]model.Product, 0, len(inputs))
	for i, input := range inputs {
		product, err := s.CreateProduct(ownerID, input)
		if err != nil {
			return created, fmt.Errorf("listing %d: %w", i+1, err)
		}
		created = append(created, *product)
	}

	logger.Info("Listings imported", map[string]interface{}{
		"owner_id": ownerID,
		"count":    len(created),
	})
	return created, nil
}

func (s *productService) ListMyListings(ownerID uint) ([]model.Product, error) {
	products, err := s.productRepo.FindByOwnerID(ownerID)
	if err != nil {
		logger.Error("Failed to list owner products", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) UpdateProduct(ownerID, id uint, input UpdateProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
		"user_id":    ownerID,
	})

	if _, err := s.ownedProduct(ownerID, id); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		input.Title = &title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		input.Description = &description
	}
	if input.ImageURL != nil && strings.TrimSpace(*input.ImageURL) == "" {
		placeholder := model.PlaceholderImageURL
		input.ImageURL = &placeholder
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		price, err := checkPrice(*input.Price)
		if err != nil {
			return nil, err
		}
		fields["price"] = price
	}
	if input.CategoryID != nil {
		if err := s.ensureCategory(*input.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *input.CategoryID
	}
	if input.ImageURL != nil {
		fields["image_url"] = strings.TrimSpace(*input.ImageURL)
	}

	if err := s.productRepo.Update(id, fields); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	updated, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
		"fields":     len(fields),
	})
	return updated, nil
}

func (s *productService) DeleteProduct(ownerID, id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
		"user_id":    ownerID,
	})

	if _, err := s.ownedProduct(ownerID, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) SearchProducts(opts ProductSearchOptions) ([]model.ProductSummary, error) {
	summaries, err := s.productRepo.Search(repository.ProductFilter{
		Search:     strings.TrimSpace(opts.Query),
		CategoryID: opts.CategoryID,
	})
	if err != nil {
		logger.Error("Failed to search products", err)
		return nil, err
	}
	return summaries, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindDetailByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) ownedProduct(ownerID, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.OwnerID != ownerID {
		logger.Warn("Product access denied", map[string]interface{}{
			"product_id": id,
			"owner_id":   product.OwnerID,
			"user_id":    ownerID,
		})
		return nil, ErrProductAccessDenied
	}
	return product, nil
}

func (s *productService) ensureCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

func checkPrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must be greater than or equal to 0", ErrInvalidInput)
	}
	if price.GreaterThan(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: price is too large", ErrInvalidInput)
	}
	return price.Round(2), nil
}
