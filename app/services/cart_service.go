package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	db           *gorm.DB
	cartRepo     repositories.CartRepository
	cartItemRepo repositories.CartItemRepository
	productRepo  repositories.ProductRepository
	logger       *zap.Logger
}

func NewCartService(
	db *gorm.DB,
	cartRepo repositories.CartRepository,
	cartItemRepo repositories.CartItemRepository,
	productRepo repositories.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		db:           db,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		logger:       logger.Named("cart"),
	}
}

// withCart runs fn inside one transaction against the caller's cart, creating
// the cart first if the caller has none, and returns the cart as it stands
// after fn.
func (s *CartService) withCart(ctx context.Context, caller auth.Identity, fn func(tx *gorm.DB, cart *models.Cart) error) (*CartDTO, error) {
	var result *CartDTO

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(ctx, tx, s.cartRepo, caller.UserID)
		if err != nil {
			return err
		}

		if fn != nil {
			if err := fn(tx, cart); err != nil {
				return err
			}
		}

		loaded, err := s.cartRepo.GetCartWithItems(ctx, tx, cart.ID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		result = toCartDTO(loaded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func getOrCreateCart(ctx context.Context, tx *gorm.DB, cartRepo repositories.CartRepository, userID string) (*models.Cart, error) {
	cart, err := cartRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Cart{UserID: userID}
	if err := cartRepo.CreateCart(ctx, tx, cart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, caller auth.Identity) (*CartDTO, error) {
	return s.withCart(ctx, caller, nil)
}

func (s *CartService) AddToCart(ctx context.Context, caller auth.Identity, productID string, qty int) (*CartDTO, error) {
	if qty < 1 {
		return nil, invalid("quantity must be at least 1")
	}

	return s.withCart(ctx, caller, func(tx *gorm.DB, cart *models.Cart) error {
		product, err := s.productRepo.FindByID(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil || !product.Active {
			return notFound("product", productID)
		}
		if qty > product.StockQuantity {
			return &InsufficientStockError{ProductID: product.ID, ProductName: product.Name, Available: product.StockQuantity, Requested: qty}
		}

		existing, err := s.cartItemRepo.GetCartAndProduct(ctx, tx, cart.ID, productID)
		if err != nil {
			return fmt.Errorf("failed to check existing cart item: %w", err)
		}

		if existing != nil {
			merged := existing.Quantity + qty
			if merged > product.StockQuantity {
				return &InsufficientStockError{ProductID: product.ID, ProductName: product.Name, Available: product.StockQuantity, Requested: merged}
			}
			if err := s.cartItemRepo.UpdateQuantity(ctx, tx, existing.ID, merged); err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
			s.logger.Debug("merged cart line", zap.String("cart_id", cart.ID), zap.String("product_id", product.ID), zap.Int("quantity", merged))
			return nil
		}

		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  qty,
			Price:     product.UnitPrice(),
		}
		if err := s.cartItemRepo.Add(ctx, tx, item); err != nil {
			return fmt.Errorf("failed to add new cart item: %w", err)
		}
		s.logger.Debug("added cart line", zap.String("cart_id", cart.ID), zap.String("product_id", product.ID), zap.Int("quantity", qty))
		return nil
	})
}

// UpdateCartItem overwrites the quantity of one of the caller's cart lines.
// A quantity of zero or less removes the line.
func (s *CartService) UpdateCartItem(ctx context.Context, caller auth.Identity, itemID string, qty int) (*CartDTO, error) {
	return s.withCart(ctx, caller, func(tx *gorm.DB, cart *models.Cart) error {
		item, err := s.cartItemRepo.GetByID(ctx, tx, itemID)
		if err != nil {
			return fmt.Errorf("failed to get cart item: %w", err)
		}
		if item == nil || item.CartID != cart.ID {
			return notFound("cart item", itemID)
		}

		if qty <= 0 {
			return s.cartItemRepo.Delete(ctx, tx, item.ID)
		}

		product, err := s.productRepo.FindByID(ctx, tx, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			return notFound("product", item.ProductID)
		}
		if qty > product.StockQuantity {
			return &InsufficientStockError{ProductID: product.ID, ProductName: product.Name, Available: product.StockQuantity, Requested: qty}
		}

		return s.cartItemRepo.UpdateQuantity(ctx, tx, item.ID, qty)
	})
}

// RemoveFromCart is a no-op for lines that are not in the caller's cart.
func (s *CartService) RemoveFromCart(ctx context.Context, caller auth.Identity, itemID string) (*CartDTO, error) {
	return s.withCart(ctx, caller, func(tx *gorm.DB, cart *models.Cart) error {
		item, err := s.cartItemRepo.GetByID(ctx, tx, itemID)
		if err != nil {
			return fmt.Errorf("failed to get cart item: %w", err)
		}
		if item == nil || item.CartID != cart.ID {
			return nil
		}
		return s.cartItemRepo.Delete(ctx, tx, item.ID)
	})
}

func (s *CartService) ClearCart(ctx context.Context, caller auth.Identity) (*CartDTO, error) {
	return s.withCart(ctx, caller, func(tx *gorm.DB, cart *models.Cart) error {
		return s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID)
	})
}
