package repository

import (
	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll(includeDeleted bool) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	SetDeleted(id uint, deleted bool) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":  product.Name,
		"price": product.Price,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Debug("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

// FindAll returns products annotated with average rating and rating count
// computed from the ratings table. The storefront passes
// includeDeleted=false; the admin listing sees everything.
func (r *productRepository) FindAll(includeDeleted bool) ([]model.Product, error) {
	logger.Debug("Finding products in database", map[string]interface{}{
		"include_deleted": includeDeleted,
	})

	ratingStats := r.db.Table("ratings").
		Select("ratings.product_id, AVG(ratings.score) AS avg_score, COUNT(*) AS score_count").
		Group("ratings.product_id")

	query := r.db.Model(&model.Product{}).
		Joins("LEFT JOIN (?) AS rating_stats ON rating_stats.product_id = products.id", ratingStats).
		Select("products.*, COALESCE(rating_stats.avg_score, 0) AS average_rating, COALESCE(rating_stats.score_count, 0) AS rating_count").
		Order("products.created_at DESC")

	if !includeDeleted {
		query = query.Where("products.is_deleted = ?", false)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products in database", err, map[string]interface{}{
			"include_deleted": includeDeleted,
		})
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) SetDeleted(id uint, deleted bool) error {
	logger.Debug("Updating product deleted flag in database", map[string]interface{}{
		"product_id": id,
		"deleted":    deleted,
	})

	if err := r.db.Model(&model.Product{}).Where("id = ?", id).Update("is_deleted", deleted).Error; err != nil {
		logger.Error("Failed to update product deleted flag in database", err, map[string]interface{}{
			"product_id": id,
			"deleted":    deleted,
		})
		return err
	}
	return nil
}
