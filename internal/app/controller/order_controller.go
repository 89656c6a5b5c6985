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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type PlaceOrderRequest struct {
	AddressID uint `json:"address_id"`
}

// PlaceOrder converts the cart into an order
// POST /api/v1/cart/checkout/place-order/
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid place order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid order data")
		return
	}

	order, err := ctrl.orderService.PlaceOrder(userID, req.AddressID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressRequired):
			apperrors.BadRequest(c, apperrors.AddressRequired, "A shipping address is required")
		case errors.Is(err, service.ErrAddressNotFound):
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"user_id":    userID,
				"address_id": req.AddressID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.OrderPlaceFailed, "Failed to place order")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders lists the caller's orders, newest first
// GET /api/v1/orders/
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to get orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetMyOrder returns one of the caller's orders with its items
// GET /api/v1/orders/:id/
func (ctrl *OrderController) GetMyOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetUserOrder(userID, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to get order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		apperrors.InternalError(c, "Failed to load order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}
