package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/Rakhulsr/wishcrate/app/utils/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,max=500"`
	ParentID    string `json:"parentId"`
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	cache        cache.CategoryCache
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, categoryCache cache.CategoryCache, logger *zap.Logger) *CategoryService {
	if categoryCache == nil {
		categoryCache = cache.NoopCache{}
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        categoryCache,
		logger:       logger.Named("category"),
	}
}

func (s *CategoryService) loadAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil {
		return categories, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("category cache read failed", zap.Error(err))
	}

	categories, err = s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if err := s.cache.SetCategories(ctx, categories); err != nil {
		s.logger.Warn("category cache write failed", zap.Error(err))
	}
	return categories, nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		parentName := ""
		if categories[i].ParentID != nil {
			parentName = names[*categories[i].ParentID]
		}
		dtos = append(dtos, toCategoryDTO(&categories[i], parentName))
	}
	return dtos, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*CategoryDTO, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, notFound("category", id)
	}
	return s.withParent(ctx, category)
}

func (s *CategoryService) withParent(ctx context.Context, category *models.Category) (*CategoryDTO, error) {
	parentName := ""
	if category.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *category.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent category: %w", err)
		}
		if parent != nil {
			parentName = parent.Name
		}
	}
	dto := toCategoryDTO(category, parentName)
	return &dto, nil
}

func (s *CategoryService) checkName(ctx context.Context, name, selfID string) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: category %q", ErrConflict, name)
	}
	return nil
}

func (s *CategoryService) resolveParent(ctx context.Context, parentID, selfID string) (*string, error) {
	if parentID == "" {
		return nil, nil
	}
	if parentID == selfID {
		return nil, invalid("a category cannot be its own parent")
	}
	parent, err := s.categoryRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent category: %w", err)
	}
	if parent == nil {
		return nil, notFound("category", parentID)
	}
	if selfID != "" {
		if err := s.checkAncestors(ctx, parent, selfID); err != nil {
			return nil, err
		}
	}
	return &parent.ID, nil
}

// checkAncestors walks up from parent and rejects the move when selfID is
// already above it in the tree.
func (s *CategoryService) checkAncestors(ctx context.Context, parent *models.Category, selfID string) error {
	seen := map[string]bool{parent.ID: true}
	for current := parent; current.ParentID != nil; {
		if *current.ParentID == selfID {
			return invalid("category %s cannot be moved under its own descendant", selfID)
		}
		if seen[*current.ParentID] {
			return nil
		}
		seen[*current.ParentID] = true

		next, err := s.categoryRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("failed to get ancestor category: %w", err)
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryDTO, error) {
	if err := s.checkName(ctx, req.Name, ""); err != nil {
		return nil, err
	}
	parentID, err := s.resolveParent(ctx, req.ParentID, "")
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        helpers.GenerateSlug(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ParentID:    parentID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q", ErrConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.invalidate(ctx)

	return s.withParent(ctx, category)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*CategoryDTO, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, notFound("category", id)
	}
	if err := s.checkName(ctx, req.Name, category.ID); err != nil {
		return nil, err
	}
	parentID, err := s.resolveParent(ctx, req.ParentID, category.ID)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Slug = helpers.GenerateSlug(req.Name)
	category.Description = req.Description
	category.ImageURL = req.ImageURL
	category.ParentID = parentID

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q", ErrConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	s.invalidate(ctx)

	return s.withParent(ctx, category)
}

// DeleteCategory refuses categories that still hold products or subcategories.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return notFound("category", id)
	}

	products, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count subcategories: %w", err)
	}
	if products > 0 || children > 0 {
		return fmt.Errorf("%w: category %q still has %d products and %d subcategories", ErrConflict, category.Name, products, children)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.invalidate(ctx)
	return nil
}
