package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-backend/internal/app/service"
	"github.com/ikkim/marketplace-backend/internal/middleware"
	"github.com/ikkim/marketplace-backend/pkg/sheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProductController struct {
	productService  service.ProductService
	categoryService service.CategoryService
}

func NewProductController(productService service.ProductService, categoryService service.CategoryService) *ProductController {
	return &ProductController{
		productService:  productService,
		categoryService: categoryService,
	}
}

// SearchProducts returns the catalog projection, newest first
// GET /api/products?q=&categoryId=
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	opts := service.ProductSearchOptions{Query: c.Query("q")}

	// A non-numeric categoryId is ignored rather than rejected.
	if raw := strings.TrimSpace(c.Query("categoryId")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			opts.CategoryID = &categoryID
		}
	}

	products, err := ctrl.productService.SearchProducts(opts)
	if err != nil {
		respondServiceError(c, err, "search products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID returns a product with its category and owner
// GET /api/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, err, "get product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct lists a new product owned by the caller
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.CreateProductInput
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.CreateProduct(userID, req)
	if err != nil {
		respondServiceError(c, err, "create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"user_id":    userID,
	})
	c.JSON(http.StatusOK, product)
}

// ListMyListings returns the caller's products
// GET /api/my/listings
func (ctrl *ProductController) ListMyListings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := ctrl.productService.ListMyListings(userID)
	if err != nil {
		respondServiceError(c, err, "list listings")
		return
	}
	c.JSON(http.StatusOK, products)
}

// ExportMyListings streams the caller's products as an xlsx workbook
// GET /api/my/listings/export
func (ctrl *ProductController) ExportMyListings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := ctrl.productService.ListMyListings(userID)
	if err != nil {
		respondServiceError(c, err, "export listings")
		return
	}
	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "export listings")
		return
	}

	names := make(map[uint]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	rows := make([]sheet.Listing, 0, len(products))
	for _, p := range products {
		rows = append(rows, sheet.Listing{
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    names[p.CategoryID],
			ImageURL:    p.ImageURL,
		})
	}

	var buf bytes.Buffer
	if err := sheet.WriteListings(&buf, rows); err != nil {
		respondServiceError(c, err, "export listings")
		return
	}

	filename := fmt.Sprintf("listings-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// UpdateProduct applies a partial update
// PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProductInput
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.UpdateProduct(userID, id, req)
	if err != nil {
		respondServiceError(c, err, "update product")
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a listing
// DELETE /api/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(userID, id); err != nil {
		respondServiceError(c, err, "delete product")
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// OKResponse is the body of successful deletions.
type OKResponse struct {
	OK bool `json:"ok"`
}
