package service

import (
	"testing"

	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/internal/app/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB, *model.User) {
	testDB := setupTestDB(t)
	productService := NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewCategoryRepository(testDB),
	)
	owner := createUser(t, testDB, "owner@example.com", "owner")
	return productService, testDB, owner
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func TestProductService_CreateProduct(t *testing.T) {
	productService, testDB, owner := setupProductServiceTest(t)
	furniture := categoryID(t, testDB, "Furniture")

	tests := []struct {
		name    string
		input   CreateProductInput
		wantErr error
	}{
		{
			name: "Valid product without image",
			input: CreateProductInput{
				Title: "Oak chair", Description: "Solid oak", Price: price("49.90"), CategoryID: furniture,
			},
		},
		{
			name: "Free product",
			input: CreateProductInput{
				Title: "Old sofa", Description: "Pick up only", Price: price("0"), CategoryID: furniture,
				ImageURL: "https://images.example.com/sofa.png",
			},
		},
		{
			name: "Short title",
			input: CreateProductInput{
				Title: "A", Description: "Solid oak", Price: price("1"), CategoryID: furniture,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "Short description",
			input: CreateProductInput{
				Title: "Oak chair", Description: "x", Price: price("1"), CategoryID: furniture,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "Negative price",
			input: CreateProductInput{
				Title: "Oak chair", Description: "Solid oak", Price: price("-1"), CategoryID: furniture,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "Missing price",
			input: CreateProductInput{
				Title: "Oak chair", Description: "Solid oak", CategoryID: furniture,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "Unknown category",
			input: CreateProductInput{
				Title: "Oak chair", Description: "Solid oak", Price: price("1"), CategoryID: 9999,
			},
			wantErr: ErrInvalidCategory,
		},
		{
			name: "Invalid image URL",
			input: CreateProductInput{
				Title: "Oak chair", Description: "Solid oak", Price: price("1"), CategoryID: furniture,
				ImageURL: "not a url",
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := productService.CreateProduct(owner.ID, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, product)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, product.ID)
			assert.Equal(t, owner.ID, product.OwnerID)
			if tt.input.ImageURL == "" {
				assert.Equal(t, model.PlaceholderImageURL, product.ImageURL)
			} else {
				assert.Equal(t, tt.input.ImageURL, product.ImageURL)
			}
		})
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	productService, testDB, owner := setupProductServiceTest(t)
	stranger := createUser(t, testDB, "stranger@example.com", "stranger")
	books := categoryID(t, testDB, "Books")
	sports := categoryID(t, testDB, "Sports")
	product := createProduct(t, testDB, owner.ID, books, "Go book", "30")

	t.Run("Non-owner is denied", func(t *testing.T) {
		_, err := productService.UpdateProduct(stranger.ID, product.ID, UpdateProductInput{Price: price("1")})
		assert.ErrorIs(t, err, ErrProductAccessDenied)
	})

	t.Run("Missing product", func(t *testing.T) {
		_, err := productService.UpdateProduct(owner.ID, 9999, UpdateProductInput{Price: price("1")})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Price only leaves other fields untouched", func(t *testing.T) {
		updated, err := productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{Price: price("50")})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(updated.Price))
		assert.Equal(t, product.Title, updated.Title)
		assert.Equal(t, product.Description, updated.Description)
		assert.Equal(t, books, updated.CategoryID)
	})

	t.Run("Unknown category", func(t *testing.T) {
		missing := uint(9999)
		_, err := productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{CategoryID: &missing})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("Several fields", func(t *testing.T) {
		updated, err := productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{
			Title:      strPtr("Running shoes"),
			CategoryID: &sports,
			ImageURL:   strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Running shoes", updated.Title)
		assert.Equal(t, sports, updated.CategoryID)
		assert.Equal(t, model.PlaceholderImageURL, updated.ImageURL)
	})

	t.Run("Invalid title", func(t *testing.T) {
		_, err := productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Whitespace-only fields", func(t *testing.T) {
		_, err := productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{Title: strPtr("   ")})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{Description: strPtr(" x  ")})
		assert.ErrorIs(t, err, ErrInvalidInput)

		stored, err := productService.GetProductByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Running shoes", stored.Title)
	})

	t.Run("Title is trimmed", func(t *testing.T) {
		updated, err := productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{Title: strPtr("  Trail shoes  ")})
		require.NoError(t, err)
		assert.Equal(t, "Trail shoes", updated.Title)
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := productService.UpdateProduct(owner.ID, product.ID, UpdateProductInput{Price: price("-5")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	productService, testDB, owner := setupProductServiceTest(t)
	stranger := createUser(t, testDB, "stranger@example.com", "stranger")
	product := createProduct(t, testDB, owner.ID, categoryID(t, testDB, "Books"), "Go book", "30")

	assert.ErrorIs(t, productService.DeleteProduct(stranger.ID, product.ID), ErrProductAccessDenied)
	assert.ErrorIs(t, productService.DeleteProduct(owner.ID, 9999), ErrProductNotFound)

	require.NoError(t, productService.DeleteProduct(owner.ID, product.ID))

	_, err := productService.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, productService.DeleteProduct(owner.ID, product.ID), ErrProductNotFound)
}

func TestProductService_SearchProducts(t *testing.T) {
	productService, testDB, owner := setupProductServiceTest(t)
	furniture := categoryID(t, testDB, "Furniture")
	books := categoryID(t, testDB, "Books")
	chair := createProduct(t, testDB, owner.ID, furniture, "Oak chair", "49.90")
	table := createProduct(t, testDB, owner.ID, furniture, "Pine table", "120")
	createProduct(t, testDB, owner.ID, books, "Gardening", "12")

	results, err := productService.SearchProducts(ProductSearchOptions{Query: "chair"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, chair.ID, results[0].ID)

	results, err = productService.SearchProducts(ProductSearchOptions{CategoryID: &furniture})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, table.ID, results[0].ID)
	for _, r := range results {
		assert.Equal(t, furniture, r.CategoryID)
	}

	results, err = productService.SearchProducts(ProductSearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestProductService_GetProductByID(t *testing.T) {
	productService, testDB, owner := setupProductServiceTest(t)
	product := createProduct(t, testDB, owner.ID, categoryID(t, testDB, "Books"), "Go book", "30")

	found, err := productService.GetProductByID(product.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	require.NotNil(t, found.Owner)
	assert.Equal(t, "Books", found.Category.Name)
	assert.Equal(t, "owner", found.Owner.Username)

	_, err = productService.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListMyListings(t *testing.T) {
	productService, testDB, owner := setupProductServiceTest(t)
	other := createUser(t, testDB, "other@example.com", "other")
	books := categoryID(t, testDB, "Books")
	first := createProduct(t, testDB, owner.ID, books, "First", "1")
	second := createProduct(t, testDB, owner.ID, books, "Second", "2")
	createProduct(t, testDB, other.ID, books, "Theirs", "3")

	listings, err := productService.ListMyListings(owner.ID)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, second.ID, listings[0].ID)
	assert.Equal(t, first.ID, listings[1].ID)
}

func TestProductService_ImportListings(t *testing.T) {
	productService, testDB, owner := setupProductServiceTest(t)
	books := categoryID(t, testDB, "Books")

	created, err := productService.ImportListings(owner.ID, []CreateProductInput{
		{Title: "Book one", Description: "First book", Price: price("10"), CategoryID: books},
		{Title: "Book two", Description: "Second book", Price: price("12.5"), CategoryID: books},
		{Title: "X", Description: "Bad row", Price: price("1"), CategoryID: books},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "listing 3")
	assert.Len(t, created, 2)

	listings, err := productService.ListMyListings(owner.ID)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}
