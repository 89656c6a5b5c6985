package service

import (
	"testing"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	orderService OrderService
	cartService  CartService
	userRepo     repository.UserRepository
	addressRepo  repository.AddressRepository
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	orderRepo    repository.OrderRepository
	db           *gorm.DB
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	return &orderServiceFixture{
		orderService: NewOrderService(testDB, orderRepo, cartRepo, addressRepo),
		cartService:  NewCartService(cartRepo, productRepo),
		userRepo:     userRepo,
		addressRepo:  addressRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		db:           testDB,
	}
}

func (f *orderServiceFixture) createUser(t *testing.T, email string) *model.User {
	user := &model.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func (f *orderServiceFixture) createAddress(t *testing.T, userID uint) *model.Address {
	address := &model.Address{
		UserID:     userID,
		Phone:      "555-0100",
		Street:     "1 Main St",
		City:       "Springfield",
		Country:    "US",
		PostalCode: "12345",
	}
	require.NoError(t, f.addressRepo.Create(address))
	return address
}

func (f *orderServiceFixture) createProduct(t *testing.T, name, price string) *model.Product {
	product := &model.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, f.productRepo.Create(product))
	return product
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := setupOrderServiceTest(t)

	user := f.createUser(t, "buyer@example.com")
	address := f.createAddress(t, user.ID)
	coffee := f.createProduct(t, "Coffee", "10.00")
	mug := f.createProduct(t, "Mug", "5.00")

	_, err := f.cartService.AddToCart(user.ID, coffee.ID, 2)
	require.NoError(t, err)
	_, err = f.cartService.AddToCart(user.ID, mug.ID, 1)
	require.NoError(t, err)

	order, err := f.orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, model.OrderStatusApproved, order.Status)
	assert.Equal(t, user.ID, order.UserID)
	require.NotNil(t, order.AddressID)
	assert.Equal(t, address.ID, *order.AddressID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"expected total 25.00, got %s", order.TotalAmount)
	require.Len(t, order.Items, 2)

	// Cart items are cleared, the cart row itself survives
	summary, err := f.cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	cart, err := f.cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
}

func TestOrderService_PlaceOrder_PriceSnapshot(t *testing.T) {
	f := setupOrderServiceTest(t)

	user := f.createUser(t, "buyer@example.com")
	address := f.createAddress(t, user.ID)
	product := f.createProduct(t, "Coffee", "10.00")

	_, err := f.cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := f.orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	// A later price change must not touch the placed order
	product.Price = decimal.RequireFromString("99.99")
	require.NoError(t, f.productRepo.Update(product))

	reloaded, err := f.orderService.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalAmount.Equal(decimal.RequireFromString("10.00")))
	require.Len(t, reloaded.Items, 1)
	assert.True(t, reloaded.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	f := setupOrderServiceTest(t)

	user := f.createUser(t, "buyer@example.com")
	other := f.createUser(t, "other@example.com")
	address := f.createAddress(t, user.ID)
	otherAddress := f.createAddress(t, other.ID)
	product := f.createProduct(t, "Coffee", "10.00")

	t.Run("Address required", func(t *testing.T) {
		_, err := f.orderService.PlaceOrder(user.ID, 0)
		assert.ErrorIs(t, err, ErrAddressRequired)
	})

	t.Run("Unknown address", func(t *testing.T) {
		_, err := f.orderService.PlaceOrder(user.ID, 9999)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})

	t.Run("Someone else's address", func(t *testing.T) {
		_, err := f.orderService.PlaceOrder(user.ID, otherAddress.ID)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})

	t.Run("No cart yet", func(t *testing.T) {
		_, err := f.orderService.PlaceOrder(user.ID, address.ID)
		assert.ErrorIs(t, err, ErrCartEmpty)
	})

	t.Run("Cart emptied before checkout", func(t *testing.T) {
		item, err := f.cartService.AddToCart(user.ID, product.ID, 1)
		require.NoError(t, err)
		require.NoError(t, f.cartService.RemoveCartItem(user.ID, item.ID))

		_, err = f.orderService.PlaceOrder(user.ID, address.ID)
		assert.ErrorIs(t, err, ErrCartEmpty)
	})
}

func TestOrderService_GetUserOrder(t *testing.T) {
	f := setupOrderServiceTest(t)

	user := f.createUser(t, "buyer@example.com")
	other := f.createUser(t, "other@example.com")
	address := f.createAddress(t, user.ID)
	product := f.createProduct(t, "Coffee", "10.00")

	_, err := f.cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := f.orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	t.Run("Owner sees the order", func(t *testing.T) {
		got, err := f.orderService.GetUserOrder(user.ID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("Other users get not found", func(t *testing.T) {
		_, err := f.orderService.GetUserOrder(other.ID, order.ID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Missing order", func(t *testing.T) {
		_, err := f.orderService.GetUserOrder(user.ID, 9999)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := setupOrderServiceTest(t)

	user := f.createUser(t, "buyer@example.com")
	address := f.createAddress(t, user.ID)
	product := f.createProduct(t, "Coffee", "10.00")

	_, err := f.cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := f.orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	t.Run("Valid status", func(t *testing.T) {
		updated, err := f.orderService.UpdateOrderStatus(order.ID, model.OrderStatusShipped)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, updated.Status)
	})

	t.Run("Invalid status", func(t *testing.T) {
		_, err := f.orderService.UpdateOrderStatus(order.ID, model.OrderStatus("cancelled"))
		assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	})

	t.Run("Missing order", func(t *testing.T) {
		_, err := f.orderService.UpdateOrderStatus(9999, model.OrderStatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
