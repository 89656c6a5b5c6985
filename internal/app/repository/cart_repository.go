package repository

import (
	"errors"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUserID(userID uint) (*model.Cart, error)
	FindOrCreateByUserID(userID uint) (*model.Cart, error)
	FindItemsByUserID(userID uint) ([]model.CartItem, error)
	FindItemByID(id uint) (*model.CartItem, error)
	FindItemByCartAndProduct(cartID, productID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeleteItem(id uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindOrCreateByUserID returns the user's cart, creating it on first use.
// Each user has exactly one cart row.
func (r *cartRepository) FindOrCreateByUserID(userID uint) (*model.Cart, error) {
	cart, err := r.FindByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Creating cart for user in database", map[string]interface{}{
		"user_id": userID,
	})

	created := &model.Cart{UserID: userID}
	if err := r.db.Create(created).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return created, nil
}

func (r *cartRepository) FindItemsByUserID(userID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.CartItem
	err := r.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Preload("Product").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (r *cartRepository) FindItemByID(id uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.Preload("Product").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItemByCartAndProduct(cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItem(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}
