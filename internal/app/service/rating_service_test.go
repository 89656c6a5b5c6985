package service

import (
	"testing"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_RateOrderItem(t *testing.T) {
	f := setupOrderServiceTest(t)
	ratingRepo := repository.NewRatingRepository(f.db)
	ratingService := NewRatingService(ratingRepo, f.orderRepo)

	user := f.createUser(t, "buyer@example.com")
	address := f.createAddress(t, user.ID)
	product := f.createProduct(t, "Coffee", "10.00")

	_, err := f.cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := f.orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	orderItemID := order.Items[0].ID

	t.Run("Unknown order item", func(t *testing.T) {
		_, err := ratingService.RateOrderItem(user.ID, 9999, 5)
		assert.ErrorIs(t, err, ErrOrderItemNotFound)
	})

	t.Run("Order not delivered yet", func(t *testing.T) {
		_, err := ratingService.RateOrderItem(user.ID, orderItemID, 5)
		assert.ErrorIs(t, err, ErrOrderNotDelivered)
	})

	t.Run("Still closed while shipped", func(t *testing.T) {
		_, err := f.orderService.UpdateOrderStatus(order.ID, model.OrderStatusShipped)
		require.NoError(t, err)

		_, err = ratingService.RateOrderItem(user.ID, orderItemID, 5)
		assert.ErrorIs(t, err, ErrOrderNotDelivered)
	})

	t.Run("Score out of range after delivery", func(t *testing.T) {
		_, err := f.orderService.UpdateOrderStatus(order.ID, model.OrderStatusDelivered)
		require.NoError(t, err)

		_, err = ratingService.RateOrderItem(user.ID, orderItemID, 0)
		assert.ErrorIs(t, err, ErrInvalidScore)

		_, err = ratingService.RateOrderItem(user.ID, orderItemID, 6)
		assert.ErrorIs(t, err, ErrInvalidScore)
	})

	t.Run("Delivered order can be rated", func(t *testing.T) {
		rating, err := ratingService.RateOrderItem(user.ID, orderItemID, 4)
		require.NoError(t, err)
		assert.Equal(t, product.ID, rating.ProductID)
		assert.Equal(t, user.ID, rating.UserID)
		assert.Equal(t, 4, rating.Score)
	})

	t.Run("One rating per user per product", func(t *testing.T) {
		_, err := ratingService.RateOrderItem(user.ID, orderItemID, 2)
		assert.ErrorIs(t, err, ErrRatingAlreadyExists)
	})
}
