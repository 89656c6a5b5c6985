package repository

import (
	"testing"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartRepoTest(t *testing.T) (CartRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewCartRepository(testDB), testDB
}

func createCartTestUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	user := &model.User{Email: email, PasswordHash: "h", FirstName: "T", Role: model.RoleCustomer, IsActive: true}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func TestCartRepository_FindOrCreateByUserID(t *testing.T) {
	repo, testDB := setupCartRepoTest(t)
	user := createCartTestUser(t, testDB, "shopper@example.com")

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	require.NotZero(t, cart.ID)

	again, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID, "one cart per user")
}

func TestCartRepository_FindItemsByUserID(t *testing.T) {
	repo, testDB := setupCartRepoTest(t)

	user := createCartTestUser(t, testDB, "shopper@example.com")
	other := createCartTestUser(t, testDB, "other@example.com")

	product := &model.Product{Name: "Coffee", Price: decimal.RequireFromString("10.00")}
	require.NoError(t, testDB.Create(product).Error)

	userCart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	otherCart, err := repo.FindOrCreateByUserID(other.ID)
	require.NoError(t, err)

	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: userCart.ID, ProductID: product.ID, Quantity: 2}))
	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: otherCart.ID, ProductID: product.ID, Quantity: 1}))

	items, err := repo.FindItemsByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1, "only the caller's items")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Coffee", items[0].Product.Name, "product is preloaded")
}

func TestCartRepository_FindItemByCartAndProduct(t *testing.T) {
	repo, testDB := setupCartRepoTest(t)

	user := createCartTestUser(t, testDB, "shopper@example.com")
	product := &model.Product{Name: "Coffee", Price: decimal.RequireFromString("10.00")}
	require.NoError(t, testDB.Create(product).Error)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)

	_, err = repo.FindItemByCartAndProduct(cart.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 3}))

	item, err := repo.FindItemByCartAndProduct(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}
