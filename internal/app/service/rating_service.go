package service

import (
	"errors"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderItemNotFound   = errors.New("order item not found")
	ErrOrderNotDelivered   = errors.New("order has not been delivered yet")
	ErrRatingAlreadyExists = errors.New("product already rated by user")
	ErrInvalidScore        = errors.New("score must be between 1 and 5")
)

type RatingService interface {
	RateOrderItem(userID, orderItemID uint, score int) (*model.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	orderRepo  repository.OrderRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, orderRepo repository.OrderRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		orderRepo:  orderRepo,
	}
}

// RateOrderItem records a product rating through a purchased order item.
// Rating is only open once the parent order is delivered, and each user
// rates a product at most once.
func (s *ratingService) RateOrderItem(userID, orderItemID uint, score int) (*model.Rating, error) {
	logger.Info("Rating order item", map[string]interface{}{
		"user_id":       userID,
		"order_item_id": orderItemID,
		"score":         score,
	})

	item, err := s.orderRepo.FindItemByID(orderItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Rating failed: order item not found", map[string]interface{}{
				"user_id":       userID,
				"order_item_id": orderItemID,
			})
			return nil, ErrOrderItemNotFound
		}
		return nil, err
	}

	if item.Order.Status != model.OrderStatusDelivered {
		logger.Warn("Rating failed: order not delivered", map[string]interface{}{
			"user_id":       userID,
			"order_item_id": orderItemID,
			"order_status":  item.Order.Status,
		})
		return nil, ErrOrderNotDelivered
	}

	exists, err := s.ratingRepo.ExistsByUserAndProduct(userID, item.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Warn("Rating failed: product already rated", map[string]interface{}{
			"user_id":    userID,
			"product_id": item.ProductID,
		})
		return nil, ErrRatingAlreadyExists
	}

	if score < 1 || score > 5 {
		logger.Warn("Rating failed: score out of range", map[string]interface{}{
			"user_id": userID,
			"score":   score,
		})
		return nil, ErrInvalidScore
	}

	rating := &model.Rating{
		ProductID: item.ProductID,
		UserID:    userID,
		Score:     score,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		return nil, err
	}

	logger.Info("Rating created successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": item.ProductID,
		"rating_id":  rating.ID,
		"score":      score,
	})
	return rating, nil
}
