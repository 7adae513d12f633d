package repositories

import (
	"context"
	"testing"

	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))
	for _, id := range []string{"c1", "c2"} {
		require.NoError(t, db.Create(&models.Category{ID: id, Name: id, Slug: id}).Error)
	}
	return db
}

func seedProduct(t *testing.T, repo ProductRepository, categoryID, name, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		CategoryID:    categoryID,
		Active:        true,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestProductRepository_DecrementStock(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	product := seedProduct(t, repo, "c1", "Mug", "20", 5)

	ok, err := repo.DecrementStock(ctx, nil, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, nil, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok, "cannot take more than the remaining stock")

	ok, err = repo.DecrementStock(ctx, nil, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.IncrementStock(ctx, nil, product.ID, 4))

	stored, err := repo.FindByID(ctx, nil, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.StockQuantity)

	ok, err = repo.DecrementStock(ctx, nil, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepository_ListFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	seedProduct(t, repo, "c1", "Blue Mug", "12", 1)
	seedProduct(t, repo, "c1", "Red Mug", "18", 1)
	seedProduct(t, repo, "c2", "Desk Lamp", "45", 1)
	hidden := seedProduct(t, repo, "c2", "Broken Mug", "1", 1)
	require.NoError(t, repo.Deactivate(ctx, hidden.ID))

	page := PageRequest{SortBy: "price", SortDir: "ASC"}.Normalize(DefaultPageSize)

	products, total, err := repo.List(ctx, ProductFilter{ActiveOnly: true, Keyword: "mug"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	assert.Equal(t, "Blue Mug", products[0].Name)

	products, total, err = repo.List(ctx, ProductFilter{Keyword: "mug"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "Broken Mug", products[0].Name)

	minPrice, maxPrice := decimal.NewFromInt(15), decimal.NewFromInt(50)
	_, total, err = repo.List(ctx, ProductFilter{ActiveOnly: true, MinPrice: &minPrice, MaxPrice: &maxPrice}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(ctx, ProductFilter{ActiveOnly: true, CategoryID: "c2"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	products, total, err = repo.List(ctx, ProductFilter{ActiveOnly: true}, PageRequest{Page: 1, Size: 2, SortBy: "drop table"}.Normalize(DefaultPageSize))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, products, 1, "unknown sort columns fall back to id")

	count, err := repo.CountByCategory(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestOrderRepository_TransitionStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	order := &models.Order{
		OrderNumber:   "WC1-ABC",
		UserID:        "u1",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodCOD,
	}
	require.NoError(t, repo.Create(ctx, nil, order))

	from := []models.OrderStatus{models.OrderStatusPending, models.OrderStatusConfirmed}

	ok, err := repo.TransitionStatus(ctx, nil, order.ID, from, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, nil, order.ID, from, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByNumber(ctx, nil, "WC1-ABC")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)

	missing, err := repo.GetByID(ctx, nil, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cancelled, err := repo.CountByStatus(ctx, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled)
}

func TestPageRequest_Normalize(t *testing.T) {
	p := PageRequest{Page: -2, Size: 500, SortDir: "sideways"}.Normalize(10)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, MaxPageSize, p.Size)
	assert.Equal(t, "DESC", p.SortDir)

	p = PageRequest{Page: 3, SortDir: "asc"}.Normalize(12)
	assert.Equal(t, 12, p.Size)
	assert.Equal(t, "ASC", p.SortDir)
	assert.Equal(t, 36, p.Offset())
}
