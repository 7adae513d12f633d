package routes

import (
	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/Rakhulsr/wishcrate/app/utils/cache"
	"github.com/Rakhulsr/wishcrate/app/utils/renderer"
	"github.com/unrolled/render"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Tokens     *auth.TokenManager
	Cache      cache.CategoryCache
	Gateway    services.PaymentGateway
	AppURL     string
	Production bool
}

type Dependencies struct {
	DB     *gorm.DB
	Logger *zap.Logger
	Render *render.Render
	Tokens *auth.TokenManager

	Auth       *services.AuthService
	Products   *services.ProductService
	Categories *services.CategoryService
	Carts      *services.CartService
	Checkout   *services.CheckoutService
	Orders     *services.OrderService
	Payments   *services.PaymentService
	Addresses  *services.AddressService
	Wishlist   *services.WishlistService
	Admin      *services.AdminService
}

// Wire builds every repository and service on top of db.
func Wire(db *gorm.DB, logger *zap.Logger, opts Options) Dependencies {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)

	return Dependencies{
		DB:     db,
		Logger: logger,
		Render: renderer.New(opts.Production),
		Tokens: opts.Tokens,

		Auth:       services.NewAuthService(db, userRepo, cartRepo, opts.Tokens, logger),
		Products:   services.NewProductService(productRepo, categoryRepo, logger),
		Categories: services.NewCategoryService(categoryRepo, productRepo, opts.Cache, logger),
		Carts:      services.NewCartService(db, cartRepo, cartItemRepo, productRepo, logger),
		Checkout:   services.NewCheckoutService(db, cartRepo, cartItemRepo, productRepo, orderRepo, orderItemRepo, logger),
		Orders:     services.NewOrderService(db, orderRepo, productRepo, logger),
		Payments:   services.NewPaymentService(db, orderRepo, userRepo, opts.Gateway, opts.AppURL, logger),
		Addresses:  services.NewAddressService(db, addressRepo),
		Wishlist:   services.NewWishlistService(wishlistRepo, productRepo),
		Admin:      services.NewAdminService(productRepo, orderRepo, userRepo, categoryRepo),
	}
}
