package services

import (
	"time"

	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/Rakhulsr/wishcrate/app/utils/calc"
	"github.com/Rakhulsr/wishcrate/app/utils/format"
	"github.com/shopspring/decimal"
)

type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func newPage[T any](content []T, page repositories.PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return &Page[T]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

type CartItemDTO struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type CartDTO struct {
	ID             string          `json:"id"`
	Items          []CartItemDTO   `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalItems     int             `json:"totalItems"`
	FormattedTotal string          `json:"formattedTotal"`
}

func toCartDTO(cart *models.Cart) *CartDTO {
	dto := &CartDTO{
		ID:          cart.ID,
		Items:       make([]CartItemDTO, 0, len(cart.CartItems)),
		TotalAmount: decimal.Zero,
	}

	for _, item := range cart.CartItems {
		line := CartItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ProductImage = item.Product.ImageURL
		}
		dto.Items = append(dto.Items, line)
		dto.TotalAmount = dto.TotalAmount.Add(line.Subtotal)
		dto.TotalItems += item.Quantity
	}
	dto.FormattedTotal = format.FormatMoney(dto.TotalAmount)
	return dto
}

type AddressFields struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zipCode"`
}

func toAddressFields(a models.ShippingAddress) AddressFields {
	return AddressFields{
		FullName:     a.FullName,
		PhoneNumber:  a.PhoneNumber,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Country:      a.Country,
		ZipCode:      a.ZipCode,
	}
}

type OrderItemDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderDTO struct {
	ID                   string               `json:"id"`
	OrderNumber          string               `json:"orderNumber"`
	UserID               string               `json:"userId"`
	Items                []OrderItemDTO       `json:"items"`
	Subtotal             decimal.Decimal      `json:"subtotal"`
	Tax                  decimal.Decimal      `json:"tax"`
	TaxRate              decimal.Decimal      `json:"taxRate"`
	ShippingCost         decimal.Decimal      `json:"shippingCost"`
	TotalAmount          decimal.Decimal      `json:"totalAmount"`
	FormattedTotal       string               `json:"formattedTotal"`
	Status               models.OrderStatus   `json:"status"`
	PaymentStatus        models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod        models.PaymentMethod `json:"paymentMethod"`
	PaymentTransactionID string               `json:"paymentTransactionId,omitempty"`
	ShippingAddress      AddressFields        `json:"shippingAddress"`
	BillingAddress       AddressFields        `json:"billingAddress"`
	TrackingNumber       string               `json:"trackingNumber,omitempty"`
	OrderDate            time.Time            `json:"orderDate"`
	EstimatedDelivery    time.Time            `json:"estimatedDeliveryDate"`
	DeliveredDate        *time.Time           `json:"deliveredDate,omitempty"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                   order.ID,
		OrderNumber:          order.OrderNumber,
		UserID:               order.UserID,
		Items:                make([]OrderItemDTO, 0, len(order.OrderItems)),
		Subtotal:             order.Subtotal,
		Tax:                  order.Tax,
		TaxRate:              calc.GetTaxRate(),
		ShippingCost:         order.ShippingCost,
		TotalAmount:          order.TotalAmount,
		FormattedTotal:       format.FormatMoney(order.TotalAmount),
		Status:               order.Status,
		PaymentStatus:        order.PaymentStatus,
		PaymentMethod:        order.PaymentMethod,
		PaymentTransactionID: order.PaymentTransactionID,
		ShippingAddress:      toAddressFields(order.ShippingAddress),
		BillingAddress:       toAddressFields(order.BillingAddress),
		TrackingNumber:       order.TrackingNumber,
		OrderDate:            order.OrderDate,
		EstimatedDelivery:    order.EstimatedDelivery,
		DeliveredDate:        order.DeliveredDate,
	}
	for _, item := range order.OrderItems {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		})
	}
	return dto
}

type ProductDTO struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	StockQuantity int              `json:"stockQuantity"`
	Brand         string           `json:"brand"`
	Sku           string           `json:"sku"`
	ImageURL      string           `json:"imageUrl"`
	CategoryID    string           `json:"categoryId"`
	CategoryName  string           `json:"categoryName"`
	SellerID      string           `json:"sellerId,omitempty"`
	Featured      bool             `json:"featured"`
	Active        bool             `json:"active"`
	AverageRating decimal.Decimal  `json:"averageRating"`
	TotalReviews  int              `json:"totalReviews"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func toProductDTO(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		StockQuantity: p.StockQuantity,
		Brand:         p.Brand,
		Sku:           p.Sku,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
		Featured:      p.Featured,
		Active:        p.Active,
		AverageRating: p.AverageRating,
		TotalReviews:  p.TotalReviews,
		CreatedAt:     p.CreatedAt,
	}
	if p.Category != nil {
		dto.CategoryName = p.Category.Name
	}
	if p.SellerID != nil {
		dto.SellerID = *p.SellerID
	}
	return dto
}

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ParentID    string `json:"parentId,omitempty"`
	ParentName  string `json:"parentName,omitempty"`
}

func toCategoryDTO(c *models.Category, parentName string) CategoryDTO {
	dto := CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		ParentName:  parentName,
	}
	if c.ParentID != nil {
		dto.ParentID = *c.ParentID
	}
	return dto
}

type AddressDTO struct {
	ID string `json:"id"`
	AddressFields
	IsDefault bool               `json:"isDefault"`
	Type      models.AddressType `json:"type"`
}

func toAddressDTO(a *models.Address) AddressDTO {
	return AddressDTO{
		ID: a.ID,
		AddressFields: AddressFields{
			FullName:     a.FullName,
			PhoneNumber:  a.PhoneNumber,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			City:         a.City,
			State:        a.State,
			Country:      a.Country,
			ZipCode:      a.ZipCode,
		},
		IsDefault: a.IsDefault,
		Type:      a.Type,
	}
}

type AdminStatsDTO struct {
	TotalProducts   int64 `json:"totalProducts"`
	TotalOrders     int64 `json:"totalOrders"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalCategories int64 `json:"totalCategories"`
	ActiveProducts  int64 `json:"activeProducts"`
	PendingOrders   int64 `json:"pendingOrders"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	Type      string    `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
}

type PaymentDTO struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

type NotificationResult struct {
	OrderNumber   string               `json:"orderNumber"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	OrderStatus   models.OrderStatus   `json:"orderStatus"`
	Changed       bool                 `json:"changed"`
}
