package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-backend/internal/app/service"
	"github.com/ikkim/marketplace-backend/internal/metrics"
	"github.com/ikkim/marketplace-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// Checkout turns the caller's cart into an order
// POST /api/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.Checkout(userID)
	if err != nil {
		respondServiceError(c, err, "checkout")
		return
	}

	metrics.RecordOrder(len(order.Items))
	log.Info("Checkout completed", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total().String(),
	})
	c.JSON(http.StatusOK, order)
}

// GetOrders returns the caller's orders, newest first
// GET /api/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		respondServiceError(c, err, "list orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}
