package routes

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/handlers"
	"github.com/Rakhulsr/wishcrate/app/handlers/admin"
	"github.com/Rakhulsr/wishcrate/app/middlewares"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(deps Dependencies) *mux.Router {
	rnd := deps.Render
	authn := middlewares.NewAuthenticator(deps.Tokens, rnd)

	user := func(h http.HandlerFunc) http.Handler {
		return authn.Authenticate(h)
	}
	withRoles := func(h http.HandlerFunc, roles ...string) http.Handler {
		return authn.Authenticate(authn.RequireRoles(roles...)(h))
	}

	authHandler := handlers.NewAuthHandler(rnd, deps.Auth)
	productHandler := handlers.NewProductHandler(rnd, deps.Products)
	categoryHandler := handlers.NewCategoryHandler(rnd, deps.Categories)
	cartHandler := handlers.NewCartHandler(rnd, deps.Carts)
	checkoutHandler := handlers.NewCheckoutHandler(rnd, deps.Checkout)
	orderHandler := handlers.NewOrderHandler(rnd, deps.Orders)
	paymentHandler := handlers.NewPaymentHandler(rnd, deps.Payments)
	addressHandler := handlers.NewAddressHandler(rnd, deps.Addresses)
	wishlistHandler := handlers.NewWishlistHandler(rnd, deps.Wishlist)
	healthHandler := handlers.NewHealthHandler(rnd, deps.DB)

	dashboardHandler := admin.NewDashboardHandler(rnd, deps.Admin)
	orderAdminHandler := admin.NewOrderAdminHandler(rnd, deps.Orders)
	categoryAdminHandler := admin.NewCategoryAdminHandler(rnd, deps.Categories)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger(deps.Logger), middlewares.Recover(rnd), middlewares.Metrics)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(rnd, w, http.StatusNotFound, handlers.CodeNotFound, "route not found")
	})

	router.HandleFunc("/healthz", healthHandler.Healthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/search", productHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/products/featured", productHandler.Featured).Methods(http.MethodGet)
	api.HandleFunc("/products/price-range", productHandler.ByPriceRange).Methods(http.MethodGet)
	api.HandleFunc("/products/category/{categoryId}", productHandler.ByCategory).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	api.Handle("/products", withRoles(productHandler.Create, models.RoleSeller, models.RoleAdmin)).Methods(http.MethodPost)
	api.Handle("/products/{id}", withRoles(productHandler.Update, models.RoleSeller, models.RoleAdmin)).Methods(http.MethodPut)
	api.Handle("/products/{id}", withRoles(productHandler.Delete, models.RoleSeller, models.RoleAdmin)).Methods(http.MethodDelete)

	api.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categoryHandler.Get).Methods(http.MethodGet)
	api.Handle("/categories", withRoles(categoryAdminHandler.Create, models.RoleAdmin)).Methods(http.MethodPost)
	api.Handle("/categories/{id}", withRoles(categoryAdminHandler.Update, models.RoleAdmin)).Methods(http.MethodPut)
	api.Handle("/categories/{id}", withRoles(categoryAdminHandler.Delete, models.RoleAdmin)).Methods(http.MethodDelete)

	api.Handle("/addresses", user(addressHandler.List)).Methods(http.MethodGet)
	api.Handle("/addresses", user(addressHandler.Create)).Methods(http.MethodPost)
	api.Handle("/addresses/{id}", user(addressHandler.Delete)).Methods(http.MethodDelete)

	api.Handle("/cart", user(cartHandler.GetCart)).Methods(http.MethodGet)
	api.Handle("/cart/add", user(cartHandler.AddToCart)).Methods(http.MethodPost)
	api.Handle("/cart/update/{cartItemId}", user(cartHandler.UpdateCartItem)).Methods(http.MethodPut)
	api.Handle("/cart/remove/{cartItemId}", user(cartHandler.RemoveFromCart)).Methods(http.MethodDelete)
	api.Handle("/cart/clear", user(cartHandler.ClearCart)).Methods(http.MethodDelete)

	api.Handle("/orders/create", user(checkoutHandler.CreateOrder)).Methods(http.MethodPost)
	api.Handle("/orders", user(orderHandler.ListOrders)).Methods(http.MethodGet)
	api.Handle("/orders/{orderId}", user(orderHandler.GetOrder)).Methods(http.MethodGet)
	api.Handle("/orders/{orderId}/cancel", user(orderHandler.CancelOrder)).Methods(http.MethodPut)
	api.Handle("/orders/{orderId}/status", withRoles(orderHandler.UpdateStatus, models.RoleAdmin)).Methods(http.MethodPut)
	api.Handle("/orders/{orderId}/pay", user(paymentHandler.Pay)).Methods(http.MethodPost)

	api.HandleFunc("/payments/notification", paymentHandler.Notification).Methods(http.MethodPost)

	api.Handle("/wishlist", user(wishlistHandler.List)).Methods(http.MethodGet)
	api.Handle("/wishlist/{productId}", user(wishlistHandler.Add)).Methods(http.MethodPost)
	api.Handle("/wishlist/{productId}", user(wishlistHandler.Remove)).Methods(http.MethodDelete)

	api.Handle("/admin/stats", withRoles(dashboardHandler.Stats, models.RoleAdmin)).Methods(http.MethodGet)
	api.Handle("/admin/orders", withRoles(orderAdminHandler.ListOrders, models.RoleAdmin)).Methods(http.MethodGet)

	return router
}
