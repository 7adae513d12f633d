package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultProductPageSize = 12

type ProductRequest struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	StockQuantity int              `json:"stockQuantity" validate:"gte=0"`
	Brand         string           `json:"brand" validate:"max=100"`
	Sku           string           `json:"sku" validate:"max=100"`
	ImageURL      string           `json:"imageUrl" validate:"omitempty,max=500"`
	CategoryID    string           `json:"categoryId"`
	Featured      bool             `json:"featured"`
}

type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	logger       *zap.Logger
}

func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.Named("product"),
	}
}

func (s *ProductService) list(ctx context.Context, filter repositories.ProductFilter, page repositories.PageRequest) (*Page[ProductDTO], error) {
	filter.ActiveOnly = true
	products, total, err := s.productRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, toProductDTO(&products[i]))
	}
	return newPage(dtos, page, total), nil
}

func (s *ProductService) ListProducts(ctx context.Context, page repositories.PageRequest) (*Page[ProductDTO], error) {
	return s.list(ctx, repositories.ProductFilter{}, page)
}

func (s *ProductService) SearchProducts(ctx context.Context, keyword string, page repositories.PageRequest) (*Page[ProductDTO], error) {
	return s.list(ctx, repositories.ProductFilter{Keyword: keyword}, page)
}

func (s *ProductService) ProductsByCategory(ctx context.Context, categoryID string, page repositories.PageRequest) (*Page[ProductDTO], error) {
	return s.list(ctx, repositories.ProductFilter{CategoryID: categoryID}, page)
}

func (s *ProductService) ProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page repositories.PageRequest) (*Page[ProductDTO], error) {
	if minPrice.IsNegative() || maxPrice.LessThan(minPrice) {
		return nil, invalid("price range %s..%s is not valid", minPrice, maxPrice)
	}
	return s.list(ctx, repositories.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}, page)
}

func (s *ProductService) FeaturedProducts(ctx context.Context, page repositories.PageRequest) (*Page[ProductDTO], error) {
	return s.list(ctx, repositories.ProductFilter{FeaturedOnly: true}, page)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.Active {
		return nil, notFound("product", id)
	}
	dto := toProductDTO(product)
	return &dto, nil
}

func (s *ProductService) validatePricing(req ProductRequest) error {
	if !req.Price.IsPositive() {
		return invalid("price must be greater than zero")
	}
	if req.DiscountPrice != nil && (req.DiscountPrice.IsNegative() || req.DiscountPrice.GreaterThan(req.Price)) {
		return invalid("discountPrice must be between 0 and price")
	}
	return nil
}

func (s *ProductService) requireCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, notFound("category", categoryID)
	}
	return category, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, caller auth.Identity, req ProductRequest) (*ProductDTO, error) {
	if !caller.HasRole(models.RoleSeller, models.RoleAdmin) {
		return nil, ErrUnauthorized
	}
	if err := s.validatePricing(req); err != nil {
		return nil, err
	}
	if req.CategoryID == "" {
		return nil, invalid("categoryId is required")
	}
	category, err := s.requireCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	sellerID := caller.UserID
	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		StockQuantity: req.StockQuantity,
		Brand:         req.Brand,
		Sku:           req.Sku,
		ImageURL:      req.ImageURL,
		CategoryID:    category.ID,
		SellerID:      &sellerID,
		Featured:      req.Featured,
		Active:        true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.Category = category

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("seller_id", sellerID))
	dto := toProductDTO(product)
	return &dto, nil
}

// editable loads a product the caller may modify. Sellers only reach their
// own listings; admins reach all of them.
func (s *ProductService) editable(ctx context.Context, caller auth.Identity, id string) (*models.Product, error) {
	if !caller.HasRole(models.RoleSeller, models.RoleAdmin) {
		return nil, ErrUnauthorized
	}
	product, err := s.productRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, notFound("product", id)
	}
	if !caller.IsAdmin() && (product.SellerID == nil || !caller.Owns(*product.SellerID)) {
		return nil, ErrUnauthorized
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, caller auth.Identity, id string, req ProductRequest) (*ProductDTO, error) {
	product, err := s.editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.validatePricing(req); err != nil {
		return nil, err
	}

	if req.CategoryID != "" && req.CategoryID != product.CategoryID {
		category, err := s.requireCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = category
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.DiscountPrice = req.DiscountPrice
	product.StockQuantity = req.StockQuantity
	product.Brand = req.Brand
	product.Sku = req.Sku
	product.ImageURL = req.ImageURL
	product.Featured = req.Featured

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	dto := toProductDTO(product)
	return &dto, nil
}

// DeleteProduct hides the product from the catalog. Order history keeps
// referring to it.
func (s *ProductService) DeleteProduct(ctx context.Context, caller auth.Identity, id string) error {
	product, err := s.editable(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Deactivate(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info("product deactivated", zap.String("product_id", product.ID))
	return nil
}
