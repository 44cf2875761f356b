package service

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddressFallbacks(t *testing.T) {
	tests := []struct {
		name string
		addr PostalAddress
		want []string
	}{
		{
			name: "full address",
			addr: PostalAddress{Street: "100 N Tryon St", City: "Charlotte", State: "NC", Zip: "28202"},
			want: []string{
				"100 N Tryon St, Charlotte, NC 28202",
				"Charlotte, NC 28202",
				"Charlotte, NC",
				"28202",
			},
		},
		{
			name: "no zip code",
			addr: PostalAddress{Street: "5 Main St", City: "Rock Hill", State: "SC"},
			want: []string{"5 Main St, Rock Hill, SC", "Rock Hill, SC"},
		},
		{
			name: "street only",
			addr: PostalAddress{Street: "1 Nowhere Rd"},
			want: []string{"1 Nowhere Rd"},
		},
		{
			name: "empty",
			addr: PostalAddress{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addressFallbacks(tt.addr))
		})
	}
}

func TestAddressLocator_Locate(t *testing.T) {
	ctx := t.Context()
	addr := PostalAddress{Street: "100 N Tryon St", City: "Charlotte", State: "NC", Zip: "28202"}

	t.Run("foreign results are skipped", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		locator := NewAddressLocator(provider, "US", slog.Default())

		provider.On("Search", ctx, geocoding.SearchRequest{Query: "100 N Tryon St, Charlotte, NC 28202", Limit: 1}).
			Return([]models.GeocodeResult{{Address: models.Address{CountryCode: "ca"}}}, nil).Once()
		provider.On("Search", ctx, geocoding.SearchRequest{Query: "Charlotte, NC 28202", Limit: 1}).
			Return(usResult(35.2271, -80.8431), nil).Once()

		coords, err := locator.Locate(ctx, addr)

		require.NoError(t, err)
		assert.InDelta(t, 35.2271, coords.Latitude, 1e-9)
	})

	t.Run("all fallbacks exhausted", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		locator := NewAddressLocator(provider, "us", slog.Default())

		provider.On("Search", ctx, mock.Anything).Return([]models.GeocodeResult{}, nil).Times(4)

		_, err := locator.Locate(ctx, addr)

		require.ErrorIs(t, err, ErrAddressNotFound)
	})

	t.Run("provider error stops the fallbacks", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		locator := NewAddressLocator(provider, "us", slog.Default())

		provider.On("Search", ctx, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := locator.Locate(ctx, addr)

		require.ErrorIs(t, err, assert.AnError)
	})
}
