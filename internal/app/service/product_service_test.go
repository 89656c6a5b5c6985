package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_SoftDeleteAndRestore(t *testing.T) {
	f := setupOrderServiceTest(t)
	productService := NewProductService(f.productRepo)

	product, err := productService.CreateProduct(ProductInput{
		Name:  "Coffee",
		Price: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	t.Run("Restore on a live product", func(t *testing.T) {
		_, err := productService.RestoreProduct(product.ID)
		assert.ErrorIs(t, err, ErrProductNotDeleted)
	})

	t.Run("Soft delete hides the product from the storefront", func(t *testing.T) {
		deleted, err := productService.SoftDeleteProduct(product.ID)
		require.NoError(t, err)
		assert.True(t, deleted.IsDeleted)

		storefront, err := productService.GetProducts()
		require.NoError(t, err)
		assert.Empty(t, storefront)

		adminView, err := productService.GetAllProducts()
		require.NoError(t, err)
		require.Len(t, adminView, 1)
		assert.True(t, adminView[0].IsDeleted)
	})

	t.Run("Second soft delete is rejected", func(t *testing.T) {
		_, err := productService.SoftDeleteProduct(product.ID)
		assert.ErrorIs(t, err, ErrProductAlreadyDeleted)
	})

	t.Run("Restore brings it back", func(t *testing.T) {
		restored, err := productService.RestoreProduct(product.ID)
		require.NoError(t, err)
		assert.False(t, restored.IsDeleted)

		storefront, err := productService.GetProducts()
		require.NoError(t, err)
		assert.Len(t, storefront, 1)
	})

	t.Run("Missing product", func(t *testing.T) {
		_, err := productService.SoftDeleteProduct(9999)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	f := setupOrderServiceTest(t)
	productService := NewProductService(f.productRepo)

	product, err := productService.CreateProduct(ProductInput{
		Name:        "Coffee",
		Description: "Dark roast",
		Price:       decimal.RequireFromString("10.00"),
		Image:       "https://cdn.example.com/coffee.png",
	})
	require.NoError(t, err)

	updated, err := productService.UpdateProduct(product.ID, ProductInput{
		Name:        "Coffee Deluxe",
		Description: "Darker roast",
		Price:       decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Coffee Deluxe", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.50")))
	// An empty image field keeps the existing upload
	assert.Equal(t, "https://cdn.example.com/coffee.png", updated.Image)

	_, err = productService.UpdateProduct(9999, ProductInput{
		Name:  "Ghost",
		Price: decimal.RequireFromString("1.00"),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
