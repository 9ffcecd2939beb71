package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-backend/internal/app/service"
	"github.com/ikkim/marketplace-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// GetCart returns the caller's cart lines with product detail
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		respondServiceError(c, err, "get cart")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddToCart adds a product or increments its quantity
// POST /api/cart/add
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.AddToCartInput
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.cartService.AddToCart(userID, req)
	if err != nil {
		respondServiceError(c, err, "add to cart")
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	c.JSON(http.StatusOK, item)
}

// RemoveFromCart deletes one of the caller's cart lines
// DELETE /api/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, id); err != nil {
		respondServiceError(c, err, "remove cart item")
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}
