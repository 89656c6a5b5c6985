package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_ExportOrders(t *testing.T) {
	f := setupOrderServiceTest(t)
	exportService := NewExportService(f.orderRepo)

	user := f.createUser(t, "buyer@example.com")
	address := f.createAddress(t, user.ID)
	product := f.createProduct(t, "Coffee", "10.00")

	_, err := f.cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)
	order, err := f.orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	file, err := exportService.ExportOrders()
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one order")

	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "Status", rows[0][3])

	assert.Equal(t, "buyer@example.com", rows[1][2])
	assert.Equal(t, "approved", rows[1][3])

	total, err := decimal.NewFromString(rows[1][4])
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("20.00")))
	assert.Contains(t, rows[1][5], "Coffee x2")
	assert.Equal(t, "Springfield", rows[1][6])
	assert.NotZero(t, order.ID)
}
