package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber string `json:"phoneNumber" validate:"max=20"`
	Role        string `json:"role" validate:"omitempty,oneof=customer seller"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	cartRepo repositories.CartRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func NewAuthService(db *gorm.DB, userRepo repositories.UserRepository, cartRepo repositories.CartRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:       db,
		userRepo: userRepo,
		cartRepo: cartRepo,
		tokens:   tokens,
		logger:   logger.Named("auth"),
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: Email already exists", ErrConflict)
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := &models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		Password:    hash,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
		Enabled:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: Email already exists", ErrConflict)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.cartRepo.CreateCart(ctx, tx, &models.Cart{UserID: user.ID})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(req.Password)) {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrUnauthorized
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}
