package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
)

type AdminService struct {
	productRepo  repositories.ProductRepository
	orderRepo    repositories.OrderRepository
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
}

func NewAdminService(
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
) *AdminService {
	return &AdminService{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*AdminStatsDTO, error) {
	var stats AdminStatsDTO
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if stats.ActiveProducts, err = s.productRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}
	if stats.TotalOrders, err = s.orderRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if stats.PendingOrders, err = s.orderRepo.CountByStatus(ctx, models.OrderStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalCategories, err = s.categoryRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	return &stats, nil
}
