package repository

import (
	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *model.Rating) error
	ExistsByUserAndProduct(userID, productID uint) (bool, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *model.Rating) error {
	logger.Debug("Creating rating in database", map[string]interface{}{
		"user_id":    rating.UserID,
		"product_id": rating.ProductID,
		"score":      rating.Score,
	})

	if err := r.db.Create(rating).Error; err != nil {
		logger.Error("Failed to create rating in database", err, map[string]interface{}{
			"user_id":    rating.UserID,
			"product_id": rating.ProductID,
		})
		return err
	}
	return nil
}

func (r *ratingRepository) ExistsByUserAndProduct(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Rating{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check rating existence in database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, err
	}
	return count > 0, nil
}
