package fakers

import (
	"strings"

	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/go-faker/faker/v4"
)

// DefaultPassword is the plain-text password every seeded account shares.
const DefaultPassword = "password"

func UserFaker(role string) (*models.User, error) {
	hash, err := helpers.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}

	return &models.User{
		FirstName:   faker.FirstName(),
		LastName:    faker.LastName(),
		Email:       strings.ToLower(faker.Email()),
		Password:    hash,
		PhoneNumber: faker.Phonenumber(),
		Role:        role,
		Enabled:     true,
	}, nil
}
