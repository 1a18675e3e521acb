package repository

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Murshi404/Online-store-Project/models"
	"github.com/Murshi404/Online-store-Project/services"
)

// setupTestDB opens the database named by TEST_DATABASE_URL and resets the
// tables this package touches. Skips when the variable is unset so the suite
// runs without a database by default.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	require.NoError(t, db.Exec(
		"TRUNCATE TABLE cart_items, carts, order_items, orders, products, categories, users RESTART IDENTITY CASCADE",
	).Error)

	return db
}

func seedUserAndProduct(t *testing.T, db *gorm.DB, available bool) (string, uint) {
	t.Helper()

	user := models.User{
		ID:           "user-1",
		Name:         "Test User",
		Email:        "user-1@example.test",
		PasswordHash: "x",
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&user).Error)

	product := models.Product{
		Name:        "Rose Bouquet",
		Price:       decimal.RequireFromString("499.00"),
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&product).Error)

	return user.ID, product.ID
}

func TestAddItemAccumulates(t *testing.T) {
	db := setupTestDB(t)
	userID, productID := seedUserAndProduct(t, db, true)
	repo := NewCartRepository(db)
	ctx := context.Background()

	item, err := repo.AddItem(ctx, userID, productID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	// repeat add folds into the same line instead of inserting a second one
	item, err = repo.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("product_id = ?", productID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	cart, err := repo.GetByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("1497.00")))
}

// Two first-adds race for a line that does not exist yet. Both must succeed
// and their quantities must merge; the unique index on (cart_id, product_id)
// must not surface as an error to either caller.
func TestAddItemConcurrentFirstAdd(t *testing.T) {
	db := setupTestDB(t)
	userID, productID := seedUserAndProduct(t, db, true)
	repo := NewCartRepository(db)
	ctx := context.Background()

	const adders = 2
	errs := make([]error, adders)
	var wg sync.WaitGroup
	for i := 0; i < adders; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.AddItem(ctx, userID, productID, 1)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoErrorf(t, err, "concurrent add %d", i)
	}

	var item models.CartItem
	require.NoError(t, db.Where("product_id = ?", productID).First(&item).Error)
	assert.Equal(t, 2, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("product_id = ?", productID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddItemProductChecks(t *testing.T) {
	db := setupTestDB(t)
	userID, productID := seedUserAndProduct(t, db, false)
	repo := NewCartRepository(db)
	ctx := context.Background()

	_, err := repo.AddItem(ctx, userID, productID, 1)
	assert.ErrorIs(t, err, services.ErrProductUnavailable)

	_, err = repo.AddItem(ctx, userID, productID+1000, 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	_, err = repo.AddItem(ctx, userID, productID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)

	// none of the rejected adds may have created a cart as a side effect
	cart, err := repo.GetByUser(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	userID, productID := seedUserAndProduct(t, db, true)
	repo := NewCartRepository(db)
	ctx := context.Background()

	item, err := repo.AddItem(ctx, userID, productID, 2)
	require.NoError(t, err)

	require.NoError(t, repo.RemoveItem(ctx, userID, item.ID))

	cart, err := repo.GetByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	assert.ErrorIs(t, repo.RemoveItem(ctx, userID, item.ID), services.ErrCartItemNotFound)
}
