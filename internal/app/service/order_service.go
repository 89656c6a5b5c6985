package service

import (
	"errors"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAddressRequired    = errors.New("shipping address is required")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOrderOwner      = errors.New("order does not belong to user")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService interface {
	PlaceOrder(userID, addressID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetUserOrder(userID, orderID uint) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	GetOrderByID(orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
	}
}

// PlaceOrder converts the user's cart into an order atomically. Order item
// prices are copied from the products at placement time, so later price
// changes never affect past orders. The cart row survives; only its items
// are cleared.
func (s *orderService) PlaceOrder(userID, addressID uint) (*model.Order, error) {
	logger.Info("Placing order from cart", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	if addressID == 0 {
		return nil, ErrAddressRequired
	}

	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order placement failed: address not found", map[string]interface{}{
				"user_id":    userID,
				"address_id": addressID,
			})
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		logger.Warn("Order placement failed: address belongs to another user", map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return nil, ErrAddressNotFound
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order placement failed: user has no cart", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrCartEmpty
		}
		return nil, err
	}

	cartItems, err := s.cartRepo.FindItemsByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Order placement failed: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction", tx.Error, map[string]interface{}{
			"user_id": userID,
		})
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := &model.Order{
		UserID:      userID,
		AddressID:   &address.ID,
		Status:      model.OrderStatusApproved,
		TotalAmount: decimal.Zero,
	}
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	total := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		price := item.Product.Price
		orderItems = append(orderItems, model.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if err := tx.Create(&orderItems).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order items", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	if err := tx.Model(order).Update("total_amount", total).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update order total", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart items", err, map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"item_count":   len(orderItems),
		"total_amount": total.String(),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

// GetUserOrder returns a single order, hiding other users' orders behind
// a not found error rather than revealing their existence.
func (s *orderService) GetUserOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order access denied: not owner", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrderByID(orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus sets a new fulfillment status from the admin panel.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !status.Valid() {
		logger.Warn("Order status update failed: invalid status", map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return s.orderRepo.FindByID(orderID)
}
