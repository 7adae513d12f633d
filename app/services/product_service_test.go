package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductService(env *testEnv) *ProductService {
	return NewProductService(env.productRepo, env.categoryRepo, zap.NewNop())
}

func productRequest(categoryID, price string) ProductRequest {
	return ProductRequest{
		Name:          "Desk Lamp",
		Description:   "Warm light",
		Price:         decimal.RequireFromString(price),
		StockQuantity: 4,
		Brand:         "Lumen",
		CategoryID:    categoryID,
	}
}

func TestProductService_CreateRequiresSellerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newProductService(env)
	category := env.category(t, "Lighting")

	customer := env.user(t, models.RoleCustomer)
	_, err := svc.CreateProduct(ctx, customer, productRequest(category.ID, "30"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	seller := env.user(t, models.RoleSeller)
	product, err := svc.CreateProduct(ctx, seller, productRequest(category.ID, "30"))
	require.NoError(t, err)
	assert.Equal(t, seller.UserID, product.SellerID)
	assert.Equal(t, "Lighting", product.CategoryName)
	assert.True(t, product.Active)
}

func TestProductService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newProductService(env)
	admin := env.user(t, models.RoleAdmin)
	category := env.category(t, "Lighting")

	_, err := svc.CreateProduct(ctx, admin, productRequest(category.ID, "0"))
	assert.ErrorIs(t, err, ErrValidation)

	req := productRequest(category.ID, "10")
	tooMuch := decimal.RequireFromString("12")
	req.DiscountPrice = &tooMuch
	_, err = svc.CreateProduct(ctx, admin, req)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, admin, productRequest("", "10"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, admin, productRequest("missing", "10"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_SellersEditOnlyTheirOwn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newProductService(env)
	category := env.category(t, "Lighting")
	owner := env.user(t, models.RoleSeller)
	rival := env.user(t, models.RoleSeller)
	admin := env.user(t, models.RoleAdmin)

	product, err := svc.CreateProduct(ctx, owner, productRequest(category.ID, "30"))
	require.NoError(t, err)

	update := productRequest(category.ID, "25")
	update.Name = "Desk Lamp v2"

	_, err = svc.UpdateProduct(ctx, rival, product.ID, update)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, rival, product.ID), ErrUnauthorized)

	updated, err := svc.UpdateProduct(ctx, owner, product.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp v2", updated.Name)
	requireDecimal(t, "25", updated.Price)

	require.NoError(t, svc.DeleteProduct(ctx, admin, product.ID))

	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := env.productRepo.FindByID(ctx, nil, product.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "delete is a soft delete")
	assert.False(t, stored.Active)
}

func TestProductService_Listings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newProductService(env)

	mug := env.product(t, "Coffee Mug", "12.00", 5)
	env.product(t, "Tea Cup", "8.00", 5)
	lamp := env.product(t, "Desk Lamp", "45.00", 5)
	hidden := env.product(t, "Old Mug", "3.00", 5)
	require.NoError(t, env.productRepo.Deactivate(ctx, hidden.ID))

	lamp.Featured = true
	require.NoError(t, env.productRepo.Update(ctx, lamp))

	page := repositories.PageRequest{SortBy: "price", SortDir: "asc"}.Normalize(DefaultProductPageSize)

	all, err := svc.ListProducts(ctx, page)
	require.NoError(t, err)
	require.Equal(t, int64(3), all.TotalElements)
	assert.Equal(t, "Tea Cup", all.Content[0].Name)
	assert.Equal(t, "Desk Lamp", all.Content[2].Name)
	assert.Equal(t, DefaultProductPageSize, all.Size)

	found, err := svc.SearchProducts(ctx, "MUG", page)
	require.NoError(t, err)
	require.Len(t, found.Content, 1)
	assert.Equal(t, mug.ID, found.Content[0].ID)

	ranged, err := svc.ProductsByPriceRange(ctx, decimal.RequireFromString("10"), decimal.RequireFromString("50"), page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ranged.TotalElements)

	_, err = svc.ProductsByPriceRange(ctx, decimal.RequireFromString("50"), decimal.RequireFromString("10"), page)
	assert.ErrorIs(t, err, ErrValidation)

	featured, err := svc.FeaturedProducts(ctx, page)
	require.NoError(t, err)
	require.Len(t, featured.Content, 1)
	assert.Equal(t, lamp.ID, featured.Content[0].ID)

	byCategory, err := svc.ProductsByCategory(ctx, mug.CategoryID, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), byCategory.TotalElements)

	paged, err := svc.ListProducts(ctx, repositories.PageRequest{Page: 1, Size: 2}.Normalize(DefaultProductPageSize))
	require.NoError(t, err)
	assert.Len(t, paged.Content, 1)
	assert.Equal(t, 2, paged.TotalPages)
}
