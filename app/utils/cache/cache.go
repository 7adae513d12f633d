package cache

import (
	"context"
	"errors"

	"github.com/Rakhulsr/wishcrate/app/models"
)

var ErrCacheMiss = errors.New("cache miss")

// CategoryCache stores the full category listing.
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	SetCategories(ctx context.Context, categories []models.Category) error
	Invalidate(ctx context.Context) error
}

// NoopCache always misses. It is used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) GetCategories(ctx context.Context) ([]models.Category, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) SetCategories(ctx context.Context, categories []models.Category) error {
	return nil
}

func (NoopCache) Invalidate(ctx context.Context) error {
	return nil
}
