package seeders

import (
	"context"
	"testing"

	"github.com/Rakhulsr/wishcrate/app/db/fakers"
	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeeder_DBSeed(t *testing.T) {
	db := openDB(t)
	seeder := NewSeeder(db, zap.NewNop())

	require.NoError(t, seeder.DBSeed(context.Background(), Options{Customers: 3, ProductsPerCategory: 2}))

	categories := int64(len(fakers.CategoryNames))
	assert.Equal(t, categories, count(t, db, &models.Category{}))
	assert.Equal(t, int64(5), count(t, db, &models.User{}))
	assert.Equal(t, int64(5), count(t, db, &models.Cart{}))
	assert.Equal(t, categories*2, count(t, db, &models.Product{}))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@wishcrate.local").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, helpers.PasswordCompare(admin.Password, []byte(fakers.DefaultPassword)))

	var product models.Product
	require.NoError(t, db.First(&product).Error)
	assert.True(t, product.Price.IsPositive())
	require.NotNil(t, product.SellerID)

	require.NoError(t, seeder.DBSeed(context.Background(), Options{}))
	assert.Equal(t, categories, count(t, db, &models.Category{}), "categories are reused")
	assert.Equal(t, int64(5), count(t, db, &models.User{}), "fixed accounts are reused")
}
