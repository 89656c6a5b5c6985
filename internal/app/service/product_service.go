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
	ErrProductNotFound       = errors.New("product not found")
	ErrProductAlreadyDeleted = errors.New("product is already deleted")
	ErrProductNotDeleted     = errors.New("product is not deleted")
)

// ProductInput carries the fields an admin provides when creating or
// fully updating a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
}

type ProductService interface {
	GetProducts() ([]model.Product, error)
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	SoftDeleteProduct(id uint) (*model.Product, error)
	RestoreProduct(id uint) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// GetProducts returns the customer-facing catalog. Soft-deleted products
// are hidden here but remain attached to historical carts and orders.
func (s *productService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll(false)
}

// GetAllProducts returns every product including soft-deleted ones, for
// the admin panel.
func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll(true)
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":  input.Name,
		"price": input.Price.String(),
	})

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	if input.Image != "" {
		product.Image = input.Image
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return product, nil
}

// SoftDeleteProduct hides a product from the catalog without destroying
// the rows that reference it. Deleting twice is rejected.
func (s *productService) SoftDeleteProduct(id uint) (*model.Product, error) {
	logger.Info("Soft deleting product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted {
		logger.Warn("Soft delete failed: product already deleted", map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrProductAlreadyDeleted
	}

	if err := s.productRepo.SetDeleted(id, true); err != nil {
		return nil, err
	}

	product.IsDeleted = true
	return product, nil
}

// RestoreProduct brings a soft-deleted product back into the catalog.
func (s *productService) RestoreProduct(id uint) (*model.Product, error) {
	logger.Info("Restoring product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if !product.IsDeleted {
		logger.Warn("Restore failed: product is not deleted", map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrProductNotDeleted
	}

	if err := s.productRepo.SetDeleted(id, false); err != nil {
		return nil, err
	}

	product.IsDeleted = false
	return product, nil
}
