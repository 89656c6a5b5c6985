package service

import (
	"errors"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	minCartQuantity = 1
	maxCartQuantity = 10
)

var (
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrNotCartOwner       = errors.New("cart item does not belong to user")
	ErrQuantityOutOfRange = errors.New("quantity must be between 1 and 10")
)

// CartSummary is a cart snapshot with the running total computed from
// current product prices.
type CartSummary struct {
	Items       []model.CartItem
	TotalAmount decimal.Decimal
}

type CartService interface {
	GetCart(userID uint) (*CartSummary, error)
	AddToCart(userID, productID uint, quantity int) (*model.CartItem, error)
	UpdateCartItem(userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveCartItem(userID, itemID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart items with the total at current prices.
// A user without a cart simply gets an empty summary.
func (s *cartService) GetCart(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.FindItemsByUserID(userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &CartSummary{
		Items:       items,
		TotalAmount: total,
	}, nil
}

// AddToCart adds a product to the user's cart, accumulating the quantity
// when the product is already there. Accumulation is deliberately uncapped;
// the cap applies only on explicit quantity updates.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		quantity = 1
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Add to cart failed: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.cartRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindItemByCartAndProduct(cart.ID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
		logger.Info("Cart item quantity accumulated", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": existing.ID,
			"quantity":     existing.Quantity,
		})
		return s.cartRepo.FindItemByID(existing.ID)
	}

	item := &model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.CreateItem(item); err != nil {
		return nil, err
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
		"product_id":   productID,
	})
	return s.cartRepo.FindItemByID(item.ID)
}

// UpdateCartItem sets an explicit quantity within the allowed range.
func (s *cartService) UpdateCartItem(userID, itemID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
		"quantity":     quantity,
	})

	if quantity < minCartQuantity || quantity > maxCartQuantity {
		logger.Warn("Cart item update failed: quantity out of range", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
			"quantity":     quantity,
		})
		return nil, ErrQuantityOutOfRange
	}

	item, err := s.findOwnedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}

	return s.cartRepo.FindItemByID(item.ID)
}

func (s *cartService) RemoveCartItem(userID, itemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})

	item, err := s.findOwnedItem(userID, itemID)
	if err != nil {
		return err
	}

	return s.cartRepo.DeleteItem(item.ID)
}

func (s *cartService) findOwnedItem(userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCartOwner
		}
		return nil, err
	}
	if item.CartID != cart.ID {
		logger.Warn("Cart item access denied: not owner", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		return nil, ErrNotCartOwner
	}
	return item, nil
}
