package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressRequest(city string, isDefault bool) AddressRequest {
	return AddressRequest{
		FullName:     "Grace Hopper",
		AddressLine1: "1 Navy Way",
		City:         city,
		IsDefault:    isDefault,
	}
}

func TestAddressService_DefaultAddressHandling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewAddressService(env.db, env.addressRepo)
	caller := env.user(t, models.RoleCustomer)

	first, err := svc.CreateAddress(ctx, caller, addressRequest("Arlington", false))
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first address becomes the default")
	assert.Equal(t, models.DefaultCountry, first.Country)
	assert.Equal(t, models.AddressTypeHome, first.Type)

	second, err := svc.CreateAddress(ctx, caller, addressRequest("Boston", false))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	req := addressRequest("Chicago", true)
	req.Type = "work"
	req.Country = "USA"
	third, err := svc.CreateAddress(ctx, caller, req)
	require.NoError(t, err)
	assert.True(t, third.IsDefault)
	assert.Equal(t, models.AddressTypeWork, third.Type)

	list, err := svc.ListAddresses(ctx, caller)
	require.NoError(t, err)
	require.Len(t, list, 3)

	defaults := 0
	for _, address := range list {
		if address.IsDefault {
			defaults++
			assert.Equal(t, third.ID, address.ID)
		}
	}
	assert.Equal(t, 1, defaults)
	assert.Equal(t, third.ID, list[0].ID, "default address is listed first")
}

func TestAddressService_DeleteIsOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewAddressService(env.db, env.addressRepo)
	owner := env.user(t, models.RoleCustomer)
	stranger := env.user(t, models.RoleCustomer)

	address, err := svc.CreateAddress(ctx, owner, addressRequest("Arlington", false))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAddress(ctx, stranger, address.ID), ErrUnauthorized)
	assert.ErrorIs(t, svc.DeleteAddress(ctx, owner, "missing"), ErrNotFound)

	require.NoError(t, svc.DeleteAddress(ctx, owner, address.ID))

	list, err := svc.ListAddresses(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)

	others, err := svc.ListAddresses(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, others)
}
