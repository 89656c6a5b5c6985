package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eezystore/eezystore-backend/internal/app/service"
	apperrors "github.com/eezystore/eezystore-backend/internal/errors"
	"github.com/eezystore/eezystore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService    service.CartService
	addressService service.AddressService
}

func NewCartController(cartService service.CartService, addressService service.AddressService) *CartController {
	return &CartController{
		cartService:    cartService,
		addressService: addressService,
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the user's cart items with the current total
// GET /api/v1/carts/
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	summary, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to get cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        summary.Items,
		"total_amount": summary.TotalAmount,
		"count":        len(summary.Items),
	})
}

// AddToCart adds a product, accumulating quantity for repeat adds
// POST /api/v1/cart/add/
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart data")
		return
	}

	item, err := ctrl.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add product to cart")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added to cart",
		"item":    item,
	})
}

// UpdateCartItem sets an explicit quantity between 1 and 10
// PATCH /api/v1/cart/item/:id/update/
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart item update request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart data")
		return
	}

	item, err := ctrl.cartService.UpdateCartItem(userID, uint(itemID), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuantityOutOfRange):
			apperrors.BadRequest(c, apperrors.CartQuantityMax, "Quantity must be between 1 and 10")
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		case errors.Is(err, service.ErrNotCartOwner):
			apperrors.Forbidden(c, "This cart item belongs to another user")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": itemID,
			})
			apperrors.InternalError(c, "Failed to update cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated",
		"item":    item,
	})
}

// RemoveCartItem deletes a line from the cart
// DELETE /api/v1/cart/item/:id/remove/
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	if err := ctrl.cartService.RemoveCartItem(userID, uint(itemID)); err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		case errors.Is(err, service.ErrNotCartOwner):
			apperrors.Forbidden(c, "This cart item belongs to another user")
		default:
			log.Error("Failed to remove cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": itemID,
			})
			apperrors.InternalError(c, "Failed to remove cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed",
	})
}

// Checkout returns everything the checkout page needs: the cart summary
// and the user's saved addresses
// GET /api/v1/cart/checkout/
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	summary, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to load cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load checkout")
		return
	}

	addresses, err := ctrl.addressService.GetUserAddresses(userID)
	if err != nil {
		log.Error("Failed to load addresses for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        summary.Items,
		"total_amount": summary.TotalAmount,
		"addresses":    addresses,
	})
}
