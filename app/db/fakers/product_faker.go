package fakers

import (
	"math/rand"
	"strings"

	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var imagePaths = []string{
	"/images/products/ss.jpg",
	"/images/products/ss1.jpg",
	"/images/products/ss2.jpg",
}

func ProductFaker(category *models.Category, sellerID string) *models.Product {
	name := capitalize(faker.Word() + " " + faker.Word())
	price := fakePrice()

	product := &models.Product{
		Name:          name,
		Description:   faker.Paragraph(),
		Price:         price,
		StockQuantity: rand.Intn(50) + 1,
		Brand:         faker.LastName(),
		Sku:           strings.ToUpper(slug.Make(name) + "-" + uuid.NewString()[:6]),
		ImageURL:      imagePaths[rand.Intn(len(imagePaths))],
		CategoryID:    category.ID,
		SellerID:      &sellerID,
		Featured:      rand.Intn(5) == 0,
		Active:        true,
	}

	if rand.Intn(4) == 0 {
		discount := price.Mul(decimal.NewFromFloat(0.8)).Round(2)
		product.DiscountPrice = &discount
	}
	return product
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fakePrice returns a price between 1.00 and 500.99.
func fakePrice() decimal.Decimal {
	cents := rand.Int63n(50000) + 100
	return decimal.New(cents, -2)
}
