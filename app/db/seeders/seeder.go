package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/wishcrate/app/db/fakers"
	"github.com/Rakhulsr/wishcrate/app/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Customers           int
	ProductsPerCategory int
}

func DefaultOptions() Options {
	return Options{Customers: 5, ProductsPerCategory: 8}
}

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger.Named("seeder")}
}

// DBSeed fills an empty database with categories, accounts and products.
// Categories and the fixed admin and seller accounts are reused when present.
func (s *Seeder) DBSeed(ctx context.Context, opts Options) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := s.seedCategories(tx)
		if err != nil {
			return err
		}

		if _, err := s.seedAccount(tx, "admin@wishcrate.local", models.RoleAdmin); err != nil {
			return err
		}
		seller, err := s.seedAccount(tx, "seller@wishcrate.local", models.RoleSeller)
		if err != nil {
			return err
		}

		for i := 0; i < opts.Customers; i++ {
			user, err := fakers.UserFaker(models.RoleCustomer)
			if err != nil {
				return err
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("failed to seed customer: %w", err)
			}
			if err := tx.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
				return fmt.Errorf("failed to seed cart: %w", err)
			}
		}

		products := make([]*models.Product, 0, len(categories)*opts.ProductsPerCategory)
		for _, category := range categories {
			for i := 0; i < opts.ProductsPerCategory; i++ {
				products = append(products, fakers.ProductFaker(category, seller.ID))
			}
		}
		if len(products) > 0 {
			if err := tx.Omit("Category").CreateInBatches(products, 50).Error; err != nil {
				return fmt.Errorf("failed to seed products: %w", err)
			}
		}

		s.logger.Info("database seeded",
			zap.Int("categories", len(categories)),
			zap.Int("customers", opts.Customers),
			zap.Int("products", len(products)),
		)
		return nil
	})
}

func (s *Seeder) seedCategories(tx *gorm.DB) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(fakers.CategoryNames))
	for _, name := range fakers.CategoryNames {
		category := fakers.CategoryFaker(name)
		if err := tx.Where(models.Category{Name: name}).FirstOrCreate(category).Error; err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *Seeder) seedAccount(tx *gorm.DB, email, role string) (*models.User, error) {
	user, err := fakers.UserFaker(role)
	if err != nil {
		return nil, err
	}
	user.Email = email

	result := tx.Where(models.User{Email: email}).FirstOrCreate(user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to seed %s account: %w", role, result.Error)
	}
	if result.RowsAffected > 0 {
		if err := tx.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
			return nil, fmt.Errorf("failed to seed cart: %w", err)
		}
		s.logger.Info("seeded account", zap.String("email", email), zap.String("role", role))
	}
	return user, nil
}
