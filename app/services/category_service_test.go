package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/wishcrate/app/utils/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCategoryService(t *testing.T, env *testEnv) (*CategoryService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCategoryService(env.categoryRepo, env.productRepo, cache.NewRedisCache(client, 0), zap.NewNop()), mr
}

func TestCategoryService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, mr := newCategoryService(t, env)

	home, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Home & Garden"})
	require.NoError(t, err)
	assert.Equal(t, "home-and-garden", home.Slug)

	kitchen, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Kitchen", ParentID: home.ID})
	require.NoError(t, err)
	assert.Equal(t, home.ID, kitchen.ParentID)
	assert.Equal(t, "Home & Garden", kitchen.ParentName)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, mr.Exists("catalog:categories"))

	_, err = svc.CreateCategory(ctx, CategoryRequest{Name: "Outdoor"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("catalog:categories"), "writes invalidate the cached listing")

	list, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCategoryService_Conflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCategoryService(env.categoryRepo, env.productRepo, nil, zap.NewNop())

	books, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Books"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, CategoryRequest{Name: "Books"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.UpdateCategory(ctx, books.ID, CategoryRequest{Name: "Books", ParentID: books.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateCategory(ctx, CategoryRequest{Name: "Comics", ParentID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	renamed, err := svc.UpdateCategory(ctx, books.ID, CategoryRequest{Name: "Books & Comics", Description: "Paper"})
	require.NoError(t, err)
	assert.Equal(t, "books-and-comics", renamed.Slug)
	assert.Equal(t, "Paper", renamed.Description)

	_, err = svc.GetCategory(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_RejectsParentCycles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCategoryService(env.categoryRepo, env.productRepo, nil, zap.NewNop())

	a, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Apparel"})
	require.NoError(t, err)
	b, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Bags", ParentID: a.ID})
	require.NoError(t, err)
	c, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Clutches", ParentID: b.ID})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, a.ID, CategoryRequest{Name: "Apparel", ParentID: b.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateCategory(ctx, a.ID, CategoryRequest{Name: "Apparel", ParentID: c.ID})
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := svc.GetCategory(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ParentID)

	// Moving a leaf to another branch is still allowed.
	d, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Decor"})
	require.NoError(t, err)
	moved, err := svc.UpdateCategory(ctx, c.ID, CategoryRequest{Name: "Clutches", ParentID: d.ID})
	require.NoError(t, err)
	assert.Equal(t, d.ID, moved.ParentID)
}

func TestCategoryService_DeleteGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCategoryService(env.categoryRepo, env.productRepo, cache.NoopCache{}, zap.NewNop())

	product := env.product(t, "Mug", "5.00", 1)
	err := svc.DeleteCategory(ctx, product.CategoryID)
	assert.ErrorIs(t, err, ErrConflict)

	parent, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Parent"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Child", ParentID: parent.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, parent.ID), ErrConflict)
	require.NoError(t, svc.DeleteCategory(ctx, child.ID))
	require.NoError(t, svc.DeleteCategory(ctx, parent.ID))

	assert.ErrorIs(t, svc.DeleteCategory(ctx, parent.ID), ErrNotFound)
}
