package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter narrows a product listing. Zero values disable a filter.
type ProductFilter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	CategoryID   string
	Keyword      string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
}

var productSortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"price":         "price",
	"createdAt":     "created_at",
	"averageRating": "average_rating",
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter, page PageRequest) ([]models.Product, int64, error)
	Deactivate(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error)
	IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit("Category").Save(product).Error
}

func (p *productRepository) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	err := conn(ctx, p.db, tx).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) filtered(ctx context.Context, filter ProductFilter) *gorm.DB {
	query := p.db.WithContext(ctx).Model(&models.Product{})

	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?)", like, like, like)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	return query
}

func (p *productRepository) List(ctx context.Context, filter ProductFilter, page PageRequest) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := productSortColumns[page.SortBy]
	if !ok {
		column = "id"
	}

	err := p.filtered(ctx, filter).
		Preload("Category").
		Order(column + " " + page.SortDir).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) Deactivate(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("active", false).Error
}

// DecrementStock reports false when the product does not hold qty units.
func (p *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error) {
	result := conn(ctx, p.db, tx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (p *productRepository) IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	return conn(ctx, p.db, tx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty)).Error
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (p *productRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

func (p *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
