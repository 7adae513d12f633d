package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/repositories"
)

type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

func (s *WishlistService) ListWishlist(ctx context.Context, caller auth.Identity) ([]ProductDTO, error) {
	items, err := s.wishlistRepo.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	dtos := make([]ProductDTO, 0, len(items))
	for _, item := range items {
		if item.Product == nil || !item.Product.Active {
			continue
		}
		dtos = append(dtos, toProductDTO(item.Product))
	}
	return dtos, nil
}

// AddToWishlist is idempotent.
func (s *WishlistService) AddToWishlist(ctx context.Context, caller auth.Identity, productID string) ([]ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.Active {
		return nil, notFound("product", productID)
	}
	if err := s.wishlistRepo.Add(ctx, caller.UserID, product.ID); err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return s.ListWishlist(ctx, caller)
}

func (s *WishlistService) RemoveFromWishlist(ctx context.Context, caller auth.Identity, productID string) ([]ProductDTO, error) {
	if err := s.wishlistRepo.Remove(ctx, caller.UserID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return s.ListWishlist(ctx, caller)
}
