package router

import (
	"github.com/eezystore/eezystore-backend/config"
	"github.com/eezystore/eezystore-backend/internal/app/controller"
	"github.com/eezystore/eezystore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController    *controller.AuthController
	productController *controller.ProductController
	cartController    *controller.CartController
	orderController   *controller.OrderController
	addressController *controller.AddressController
	ratingController  *controller.RatingController
	adminController   *controller.AdminController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	addressController *controller.AddressController,
	ratingController *controller.RatingController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		productController: productController,
		cartController:    cartController,
		orderController:   orderController,
		addressController: addressController,
		ratingController:  ratingController,
		adminController:   adminController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "EezyStore API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		customer := v1.Group("/customer")
		{
			customer.POST("/signup", r.authController.Signup)
			customer.POST("/login", r.authController.Login)
			customer.POST("/logout", r.authController.Logout)
			customer.POST("/token/refresh", r.authController.RefreshToken)
			customer.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		v1.GET("/products/", r.productController.GetProducts)

		v1.GET("/carts/", r.authMiddleware.Authenticate(), r.cartController.GetCart)

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.POST("/add/", r.cartController.AddToCart)
			cart.PATCH("/item/:id/update/", r.cartController.UpdateCartItem)
			cart.DELETE("/item/:id/remove/", r.cartController.RemoveCartItem)
			cart.GET("/checkout/", r.cartController.Checkout)
			cart.POST("/checkout/place-order/", r.orderController.PlaceOrder)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("/", r.orderController.GetMyOrders)
			orders.GET("/:id/", r.orderController.GetMyOrder)
			orders.POST("/items/:id/rate/", r.ratingController.RateOrderItem)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("/", r.addressController.GetAddresses)
			addresses.POST("/", r.addressController.CreateAddress)
			addresses.PATCH("/select/:id/", r.addressController.SelectDefaultAddress)
			addresses.DELETE("/:id/", r.addressController.DeleteAddress)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/login", r.authController.AdminLogin)

			protected := admin.Group("")
			protected.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
			{
				protected.GET("/customers", r.adminController.GetCustomers)
				protected.POST("/approve-customer", r.adminController.ApproveCustomer)
				protected.POST("/block-customer", r.adminController.BlockCustomer)
				protected.POST("/unblock-customer", r.adminController.UnblockCustomer)

				protected.GET("/products/", r.adminController.GetProducts)
				protected.POST("/products/create/", r.adminController.CreateProduct)
				protected.PUT("/products/:id/", r.adminController.UpdateProduct)
				protected.DELETE("/products/:id/soft-delete/", r.adminController.SoftDeleteProduct)
				protected.POST("/products/:id/restore/", r.adminController.RestoreProduct)
				protected.POST("/products/upload-image/", r.uploadController.GeneratePresignedURL)

				protected.GET("/orders/", r.adminController.GetOrders)
				protected.GET("/orders/export", r.adminController.ExportOrders)
				protected.GET("/orders/:id/", r.adminController.GetOrder)
				protected.PATCH("/orders/:id/status/", r.adminController.UpdateOrderStatus)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
