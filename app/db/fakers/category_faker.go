package fakers

import (
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
)

var CategoryNames = []string{
	"Electronics",
	"Home & Kitchen",
	"Books",
	"Toys & Games",
	"Fashion",
}

func CategoryFaker(name string) *models.Category {
	return &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: faker.Sentence(),
	}
}
