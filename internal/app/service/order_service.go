package service

import (
	"errors"

	"github.com/ikkim/marketplace-backend/internal/app/model"
	"github.com/ikkim/marketplace-backend/internal/app/repository"
	"github.com/ikkim/marketplace-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderService interface {
	Checkout(userID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
	}
}

// Checkout turns the user's cart into an order. Reading the cart, writing the
// order with its price snapshots and clearing the cart share one transaction.
func (s *orderService) Checkout(userID uint) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
	})

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := repository.NewCartRepository(tx)
		orderRepo := repository.NewOrderRepository(tx)

		// Locked so a concurrent checkout of the same cart waits and then sees it empty.
		cartItems, err := cartRepo.FindByUserIDForUpdate(userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		items := make([]model.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			if cartItem.Product == nil {
				return ErrProductNotFound
			}
			items = append(items, model.OrderItem{
				ProductID: cartItem.ProductID,
				Quantity:  cartItem.Quantity,
				Price:     cartItem.Product.Price,
			})
		}

		order = &model.Order{UserID: userID, Items: items}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return cartRepo.DeleteByUserID(userID)
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
				"user_id": userID,
			})
		} else {
			logger.Error("Failed to create order from cart", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":    created.ID,
		"user_id":     userID,
		"items_count": len(created.Items),
		"total":       created.Total().String(),
	})
	return created, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}
