package repository

import (
	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	FindItemByID(id uint) (*model.OrderItem, error)
	UpdateStatus(orderID uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("User").
		Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	err := r.db.Where("user_id = ?", userID).
		Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	logger.Debug("Finding all orders in database")

	var orders []model.Order
	err := r.db.
		Preload("User").
		Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find all orders in database", err)
		return nil, err
	}

	logger.Debug("Orders found in database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

// FindItemByID preloads the parent order; the rating gate reads its status.
func (r *orderRepository) FindItemByID(id uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.
		Preload("Order").
		Preload("Product").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) UpdateStatus(orderID uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	result := r.db.Model(&model.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update order status in database", result.Error, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
