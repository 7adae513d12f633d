package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/handlers"
	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/models/migrations"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiClient struct {
	t      *testing.T
	router *mux.Router
	db     *gorm.DB
	tokens *auth.TokenManager
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, migrations.AutoMigrate(db))

	tokens := auth.NewTokenManager("route-test-secret", time.Hour)
	deps := Wire(db, zap.NewNop(), Options{Tokens: tokens, AppURL: "http://localhost:8080"})

	return &apiClient{t: t, router: NewRouter(deps), db: db, tokens: tokens}
}

func (c *apiClient) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (c *apiClient) register(email, role string) services.AuthResponse {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/auth/register", "", services.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret123",
		Role:      role,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[services.AuthResponse](c.t, rec)
}

func (c *apiClient) adminToken() string {
	c.t.Helper()
	hash, err := helpers.HashPassword("secret123")
	require.NoError(c.t, err)

	admin := &models.User{FirstName: "Root", LastName: "Admin", Email: "admin@example.com", Password: hash, Role: models.RoleAdmin, Enabled: true}
	require.NoError(c.t, c.db.Create(admin).Error)

	token, _, err := c.tokens.Generate(admin.ID, admin.Email, admin.Role)
	require.NoError(c.t, err)
	return token
}

func TestRouter_CheckoutFlow(t *testing.T) {
	api := newAPI(t)
	adminToken := api.adminToken()
	seller := api.register("seller@example.com", models.RoleSeller)
	customer := api.register("buyer@example.com", "")

	rec := api.do(http.MethodPost, "/api/categories", adminToken, services.CategoryRequest{Name: "Kitchen"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[services.CategoryDTO](t, rec)

	rec = api.do(http.MethodPost, "/api/products", seller.Token, map[string]interface{}{
		"name":          "Mug",
		"price":         "20.00",
		"stockQuantity": 5,
		"categoryId":    category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[services.ProductDTO](t, rec)

	rec = api.do(http.MethodPost, "/api/cart/add?productId="+product.ID+"&quantity=2", customer.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[services.CartDTO](t, rec)
	require.Len(t, cart.Items, 1)

	rec = api.do(http.MethodPost, "/api/orders/create", customer.Token, map[string]interface{}{
		"shippingAddress": map[string]string{"fullName": "Buyer", "city": "Pune"},
		"paymentMethod":   "COD",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[services.OrderDTO](t, rec)
	assert.Equal(t, "54", order.TotalAmount.String())
	assert.Equal(t, models.OrderStatusPending, order.Status)

	rec = api.do(http.MethodGet, "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[services.ProductDTO](t, rec).StockQuantity)

	rec = api.do(http.MethodGet, "/api/orders?page=0&size=5", customer.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[services.Page[services.OrderDTO]](t, rec)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, 5, page.Size)

	rec = api.do(http.MethodPut, "/api/orders/"+order.ID+"/cancel", customer.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPut, "/api/orders/"+order.ID+"/cancel", customer.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, handlers.CodeInvalidStateTransition, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[services.AdminStatsDTO](t, rec)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(3), stats.TotalUsers)
}

func TestRouter_ErrorMapping(t *testing.T) {
	api := newAPI(t)
	adminToken := api.adminToken()
	customer := api.register("buyer@example.com", "")

	rec := api.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.CodeUnauthenticated, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodGet, "/api/cart", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/categories", customer.Token, services.CategoryRequest{Name: "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, handlers.CodeUnauthorized, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodPost, "/api/orders/create", customer.Token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, handlers.CodeEmptyCart, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodGet, "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, handlers.CodeNotFound, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[handlers.ErrorResponse](t, rec)
	assert.Equal(t, handlers.CodeInvalidRequest, errResp.Code)
	assert.Contains(t, errResp.Details, "email")

	rec = api.do(http.MethodPost, "/api/auth/register", "", services.RegisterRequest{
		FirstName: "Dup", LastName: "User", Email: "buyer@example.com", Password: "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", "", services.LoginRequest{Email: "buyer@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/categories", adminToken, services.CategoryRequest{Name: "Kitchen"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = api.do(http.MethodPost, "/api/categories", adminToken, services.CategoryRequest{Name: "Kitchen"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, handlers.CodeConflict, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodPost, "/api/orders/any/pay", customer.Token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, handlers.CodePaymentUnavailable, decode[handlers.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodGet, "/api/products/price-range?minPrice=abc&maxPrice=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_InsufficientStockDetails(t *testing.T) {
	api := newAPI(t)
	adminToken := api.adminToken()
	customer := api.register("buyer@example.com", "")

	rec := api.do(http.MethodPost, "/api/categories", adminToken, services.CategoryRequest{Name: "Kitchen"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[services.CategoryDTO](t, rec)

	rec = api.do(http.MethodPost, "/api/products", adminToken, map[string]interface{}{
		"name": "Mug", "price": 20, "stockQuantity": 1, "categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[services.ProductDTO](t, rec)

	rec = api.do(http.MethodPost, "/api/cart/add", customer.Token, handlers.AddToCartRequest{ProductID: product.ID, Quantity: 3})
	assert.Equal(t, http.StatusConflict, rec.Code)
	errResp := decode[handlers.ErrorResponse](t, rec)
	assert.Equal(t, handlers.CodeInsufficientStock, errResp.Code)
	assert.Equal(t, "1", errResp.Details["available"])
	assert.Equal(t, "3", errResp.Details["requested"])
}

func TestRouter_CreateOrderWithChunkedEmptyBody(t *testing.T) {
	api := newAPI(t)
	adminToken := api.adminToken()
	customer := api.register("buyer@example.com", "")

	rec := api.do(http.MethodPost, "/api/categories", adminToken, services.CategoryRequest{Name: "Kitchen"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[services.CategoryDTO](t, rec)

	rec = api.do(http.MethodPost, "/api/products", adminToken, map[string]interface{}{
		"name": "Mug", "price": 20, "stockQuantity": 5, "categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[services.ProductDTO](t, rec)

	rec = api.do(http.MethodPost, "/api/cart/add?productId="+product.ID+"&quantity=1", customer.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	chunked := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/orders/create", strings.NewReader(body))
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}
		req.Header.Set("Authorization", "Bearer "+customer.Token)
		rec := httptest.NewRecorder()
		api.router.ServeHTTP(rec, req)
		return rec
	}

	rec = chunked("{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = chunked("")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[services.OrderDTO](t, rec)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(helpers.RequestIDHeader))

	rec = api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wishcrate_http_requests_total")

	rec = api.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
