package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/service"
	apperrors "github.com/eezystore/eezystore-backend/internal/errors"
	"github.com/eezystore/eezystore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminController backs the admin panel: customer lifecycle, product
// management, and order fulfillment.
type AdminController struct {
	customerService service.CustomerService
	productService  service.ProductService
	orderService    service.OrderService
	exportService   service.ExportService
}

func NewAdminController(
	customerService service.CustomerService,
	productService service.ProductService,
	orderService service.OrderService,
	exportService service.ExportService,
) *AdminController {
	return &AdminController{
		customerService: customerService,
		productService:  productService,
		orderService:    orderService,
		exportService:   exportService,
	}
}

type CustomerActionRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"` // S3 URL from the upload API
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetCustomers lists all customer accounts
// GET /api/v1/admin/customers
func (ctrl *AdminController) GetCustomers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customers, err := ctrl.customerService.GetCustomers()
	if err != nil {
		log.Error("Failed to get customers", err, nil)
		apperrors.InternalError(c, "Failed to load customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

// ApproveCustomer activates a pending signup
// POST /api/v1/admin/approve-customer
func (ctrl *AdminController) ApproveCustomer(c *gin.Context) {
	ctrl.customerAction(c, "approve", ctrl.customerService.ApproveCustomer)
}

// BlockCustomer deactivates an account
// POST /api/v1/admin/block-customer
func (ctrl *AdminController) BlockCustomer(c *gin.Context) {
	ctrl.customerAction(c, "block", ctrl.customerService.BlockCustomer)
}

// UnblockCustomer reactivates a blocked account
// POST /api/v1/admin/unblock-customer
func (ctrl *AdminController) UnblockCustomer(c *gin.Context) {
	ctrl.customerAction(c, "unblock", ctrl.customerService.UnblockCustomer)
}

func (ctrl *AdminController) customerAction(c *gin.Context, action string, fn func(uint) (*model.User, error)) {
	log := middleware.GetLoggerFromContext(c)

	var req CustomerActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid customer action request", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	user, err := fn(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
		case errors.Is(err, service.ErrCustomerAlreadyActive):
			apperrors.Conflict(c, apperrors.CustomerAlreadyActive, "Customer account is already active")
		case errors.Is(err, service.ErrCustomerAlreadyInUse):
			apperrors.Conflict(c, apperrors.CustomerAlreadyInUse, "Customer account is already in use")
		case errors.Is(err, service.ErrCustomerAlreadyBlocked):
			apperrors.Conflict(c, apperrors.CustomerAlreadyBlocked, "Customer account is already blocked")
		default:
			log.Error("Customer action failed", err, map[string]interface{}{
				"action":  action,
				"user_id": req.UserID,
			})
			apperrors.InternalError(c, "Failed to update customer")
		}
		return
	}

	log.Info("Customer action completed", map[string]interface{}{
		"action":  action,
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Customer %s successful", action),
		"customer": user,
	})
}

// GetProducts lists every product including soft-deleted ones
// GET /api/v1/admin/products/
func (ctrl *AdminController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.GetAllProducts()
	if err != nil {
		log.Error("Failed to get products for admin", err, nil)
		apperrors.InternalError(c, "Failed to load products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct adds a product to the catalog
// POST /api/v1/admin/products/create/
func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// UpdateProduct replaces a product's details
// PUT /api/v1/admin/products/:id/
func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(uint(productID), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
		"product": product,
	})
}

// SoftDeleteProduct hides a product from the storefront
// DELETE /api/v1/admin/products/:id/soft-delete/
func (ctrl *AdminController) SoftDeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.SoftDeleteProduct(uint(productID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductAlreadyDeleted):
			apperrors.BadRequest(c, apperrors.ProductAlreadyDeleted, "Product is already deleted")
		default:
			log.Error("Failed to soft delete product", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.InternalError(c, "Failed to delete product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
		"product": product,
	})
}

// RestoreProduct brings a soft-deleted product back
// POST /api/v1/admin/products/:id/restore/
func (ctrl *AdminController) RestoreProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.RestoreProduct(uint(productID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductNotDeleted):
			apperrors.BadRequest(c, apperrors.ProductNotDeleted, "Product is not deleted")
		default:
			log.Error("Failed to restore product", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.InternalError(c, "Failed to restore product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product restored",
		"product": product,
	})
}

// GetOrders lists every order for fulfillment
// GET /api/v1/admin/orders/
func (ctrl *AdminController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		log.Error("Failed to get orders for admin", err, nil)
		apperrors.InternalError(c, "Failed to load orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order with customer, address and items
// GET /api/v1/admin/orders/:id/
func (ctrl *AdminController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to get order for admin", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.InternalError(c, "Failed to load order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateOrderStatus moves an order through fulfillment
// PATCH /api/v1/admin/orders/:id/status/
func (ctrl *AdminController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order status request", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(uint(orderID), model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Status must be approved, shipped or delivered")
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": orderID,
				"status":   req.Status,
			})
			apperrors.InternalError(c, "Failed to update order status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// ExportOrders streams all orders as an XLSX download
// GET /api/v1/admin/orders/export
func (ctrl *AdminController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, err := ctrl.exportService.ExportOrders()
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		apperrors.InternalError(c, "Failed to export orders")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write XLSX response", err, nil)
	}
}
