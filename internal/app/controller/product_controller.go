package controller

import (
	"net/http"

	"github.com/eezystore/eezystore-backend/internal/app/service"
	apperrors "github.com/eezystore/eezystore-backend/internal/errors"
	"github.com/eezystore/eezystore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// GetProducts returns the storefront catalog with rating aggregates
// GET /api/v1/products/
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.GetProducts()
	if err != nil {
		log.Error("Failed to get products", err, nil)
		apperrors.InternalError(c, "Failed to load products")
		return
	}

	log.Debug("Products retrieved", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}
