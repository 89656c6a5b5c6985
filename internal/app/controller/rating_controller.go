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

type RatingController struct {
	ratingService service.RatingService
}

func NewRatingController(ratingService service.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

type RateOrderItemRequest struct {
	Score int `json:"score" binding:"required"`
}

// RateOrderItem rates the product behind a delivered order item
// POST /api/v1/orders/items/:id/rate/
func (ctrl *RatingController) RateOrderItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	orderItemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order item ID")
		return
	}

	var req RateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid rating request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid rating data")
		return
	}

	rating, err := ctrl.ratingService.RateOrderItem(userID, uint(orderItemID), req.Score)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderItemNotFound):
			apperrors.NotFound(c, apperrors.OrderItemNotFound, "Order item not found")
		case errors.Is(err, service.ErrOrderNotDelivered):
			apperrors.BadRequest(c, apperrors.RatingNotDelivered, "You can rate a product once the order is delivered")
		case errors.Is(err, service.ErrRatingAlreadyExists):
			apperrors.BadRequest(c, apperrors.RatingAlreadyExists, "You have already rated this product")
		case errors.Is(err, service.ErrInvalidScore):
			apperrors.BadRequest(c, apperrors.RatingInvalidScore, "Score must be between 1 and 5")
		default:
			log.Error("Failed to create rating", err, map[string]interface{}{
				"user_id":       userID,
				"order_item_id": orderItemID,
			})
			apperrors.InternalError(c, "Failed to submit rating")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rating submitted",
		"rating":  rating,
	})
}
