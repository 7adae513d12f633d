package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"gorm.io/gorm"
)

type AddressRequest struct {
	FullName     string `json:"fullName" validate:"required,max=255"`
	PhoneNumber  string `json:"phoneNumber" validate:"max=20"`
	AddressLine1 string `json:"addressLine1" validate:"required,max=255"`
	AddressLine2 string `json:"addressLine2" validate:"max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"max=100"`
	Country      string `json:"country" validate:"max=100"`
	ZipCode      string `json:"zipCode" validate:"max=20"`
	IsDefault    bool   `json:"isDefault"`
	Type         string `json:"type" validate:"omitempty,oneof=HOME WORK OTHER home work other"`
}

type AddressService struct {
	db          *gorm.DB
	addressRepo repositories.AddressRepository
}

func NewAddressService(db *gorm.DB, addressRepo repositories.AddressRepository) *AddressService {
	return &AddressService{db: db, addressRepo: addressRepo}
}

func (s *AddressService) ListAddresses(ctx context.Context, caller auth.Identity) ([]AddressDTO, error) {
	addresses, err := s.addressRepo.FindAddressesByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	dtos := make([]AddressDTO, 0, len(addresses))
	for i := range addresses {
		dtos = append(dtos, toAddressDTO(&addresses[i]))
	}
	return dtos, nil
}

// CreateAddress makes the caller's first address the default one. A new
// default address clears the flag on the previous one.
func (s *AddressService) CreateAddress(ctx context.Context, caller auth.Identity, req AddressRequest) (*AddressDTO, error) {
	addressType := models.AddressType(strings.ToUpper(req.Type))
	if addressType == "" {
		addressType = models.AddressTypeHome
	}
	country := req.Country
	if country == "" {
		country = models.DefaultCountry
	}

	address := &models.Address{
		UserID:       caller.UserID,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Country:      country,
		ZipCode:      req.ZipCode,
		IsDefault:    req.IsDefault,
		Type:         addressType,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.addressRepo.CountByUserID(ctx, tx, caller.UserID)
		if err != nil {
			return fmt.Errorf("failed to count addresses: %w", err)
		}
		if count == 0 {
			address.IsDefault = true
		}
		if address.IsDefault && count > 0 {
			if err := s.addressRepo.ClearDefault(ctx, tx, caller.UserID); err != nil {
				return fmt.Errorf("failed to clear default address: %w", err)
			}
		}
		return s.addressRepo.CreateAddress(ctx, tx, address)
	})
	if err != nil {
		return nil, err
	}

	dto := toAddressDTO(address)
	return &dto, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, caller auth.Identity, id string) error {
	address, err := s.addressRepo.FindAddressByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}
	if address == nil {
		return notFound("address", id)
	}
	if !caller.Owns(address.UserID) {
		return ErrUnauthorized
	}
	return s.addressRepo.DeleteAddress(ctx, id)
}
