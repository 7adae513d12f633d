package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/models/migrations"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	userRepo     repositories.UserRepository
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	cartRepo     repositories.CartRepository
	cartItemRepo repositories.CartItemRepository
	orderRepo    repositories.OrderRepository
	orderItems   repositories.OrderItemRepository
	addressRepo  repositories.AddressRepository
	wishlistRepo repositories.WishlistRepository

	carts    *CartService
	checkout *CheckoutService
	orders   *OrderService
}

// newTestEnv opens a private in-memory database. A single connection keeps
// every statement on the same in-memory schema.
func newTestEnv(t *testing.T) *testEnv {
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

	require.NoError(t, migrations.AutoMigrate(db))

	env := &testEnv{
		db:           db,
		userRepo:     repositories.NewUserRepository(db),
		productRepo:  repositories.NewProductRepository(db),
		categoryRepo: repositories.NewCategoryRepository(db),
		cartRepo:     repositories.NewCartRepository(db),
		cartItemRepo: repositories.NewCartItemRepository(db),
		orderRepo:    repositories.NewOrderRepository(db),
		orderItems:   repositories.NewOrderItemRepository(db),
		addressRepo:  repositories.NewAddressRepository(db),
		wishlistRepo: repositories.NewWishlistRepository(db),
	}
	log := zap.NewNop()
	env.carts = NewCartService(db, env.cartRepo, env.cartItemRepo, env.productRepo, log)
	env.checkout = NewCheckoutService(db, env.cartRepo, env.cartItemRepo, env.productRepo, env.orderRepo, env.orderItems, log)
	env.orders = NewOrderService(db, env.orderRepo, env.productRepo, log)
	return env
}

func (e *testEnv) user(t *testing.T, role string) auth.Identity {
	t.Helper()
	n, err := e.userRepo.Count(context.Background())
	require.NoError(t, err)

	user := &models.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
		Password:  "hash",
		Role:      role,
		Enabled:   true,
	}
	require.NoError(t, e.userRepo.Create(context.Background(), nil, user))
	return auth.Identity{UserID: user.ID, Role: user.Role}
}

func (e *testEnv) category(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: name}
	require.NoError(t, e.categoryRepo.Create(context.Background(), category))
	return category
}

func (e *testEnv) product(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	category, err := e.categoryRepo.FindByName(context.Background(), "General")
	require.NoError(t, err)
	if category == nil {
		category = e.category(t, "General")
	}

	product := &models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		CategoryID:    category.ID,
		Active:        true,
	}
	require.NoError(t, e.productRepo.Create(context.Background(), product))
	return product
}

func (e *testEnv) stock(t *testing.T, productID string) int {
	t.Helper()
	product, err := e.productRepo.FindByID(context.Background(), nil, productID)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product.StockQuantity
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
