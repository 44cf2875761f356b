package geocoding_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

const charlotteRecord = `{
	"lat":"35.2270869","lon":"-80.8431267",
	"display_name":"123, Main Street, Charlotte, Mecklenburg County, North Carolina, 28202, United States",
	"type":"house","class":"building",
	"address":{"house_number":"123","road":"Main Street","city":"Charlotte","county":"Mecklenburg County",
		"state":"North Carolina","postcode":"28202","country_code":"us"}
}`

func newNominatim(client geocoding.HTTPClient) *geocoding.NominatimProvider {
	return geocoding.NewNominatimProviderWithClient(
		client,
		geocoding.NominatimOptions{CountryCode: "us"},
		rate.NewLimiter(rate.Inf, 0),
		slog.Default(),
	)
}

func TestNominatimProvider_Search(t *testing.T) {
	ctx := t.Context()

	t.Run("successful search", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
				query := req.URL.Query()
				assert.Equal(t, "123 Main St Charlotte", query.Get("q"))
				assert.Equal(t, "json", query.Get("format"))
				assert.Equal(t, "us", query.Get("countrycodes"))
				assert.Equal(t, "1", query.Get("addressdetails"))
				assert.Equal(t, "8", query.Get("limit"))
				assert.Equal(t, "1", query.Get("dedupe"))
				assert.Equal(t, geocoding.NominatimUserAgent, req.Header.Get("User-Agent"))

				return jsonResponse(http.StatusOK, "["+charlotteRecord+"]"), nil
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{
			Query: "123 Main St Charlotte", Limit: 8, Dedupe: true,
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		res := results[0]
		assert.InEpsilon(t, 35.2270869, res.Coordinates.Latitude, 0.0001)
		assert.InEpsilon(t, -80.8431267, res.Coordinates.Longitude, 0.0001)
		assert.Equal(t, "house", res.Type)
		assert.Equal(t, "building", res.Class)
		assert.Equal(t, "123", res.Address.HouseNumber)
		assert.Equal(t, "Main Street", res.Address.Road)
		assert.Equal(t, "Charlotte", res.Address.City)
		assert.Equal(t, "North Carolina", res.Address.State)
		assert.Equal(t, "28202", res.Address.Postcode)
		assert.Equal(t, "us", res.Address.CountryCode)
		assert.JSONEq(t, charlotteRecord, string(res.Raw))
	})

	t.Run("resolve request omits dedupe", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Empty(t, req.URL.Query().Get("dedupe"))
				return jsonResponse(http.StatusOK, `[]`), nil
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{Query: "Durham", Limit: 1})

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusTooManyRequests, `{"error":"Rate limit exceeded"}`), nil
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{Query: "some address"})

		require.Error(t, err)
		require.Nil(t, results)
		var statusErr *geocoding.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
		assert.Contains(t, err.Error(), "nominatim API returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `invalid json`), nil
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{Query: "some address"})

		require.Error(t, err)
		require.Nil(t, results)
		require.ErrorIs(t, err, geocoding.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "decode nominatim response")
	})

	t.Run("record without address details", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[{"lat":"35.1","lon":"-80.1","display_name":"x"}]`), nil
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{Query: "some address"})

		require.Error(t, err)
		require.Nil(t, results)
		require.ErrorIs(t, err, geocoding.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "has no address")
	})

	t.Run("invalid latitude in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[{"lat":"invalid","lon":"-80.84","address":{}}]`), nil
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{Query: "some address"})

		require.Error(t, err)
		require.Nil(t, results)
		require.ErrorIs(t, err, geocoding.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "invalid latitude")
	})

	t.Run("invalid longitude in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[{"lat":"35.22","lon":"invalid","address":{}}]`), nil
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{Query: "some address"})

		require.Error(t, err)
		require.Nil(t, results)
		require.ErrorIs(t, err, geocoding.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "invalid longitude")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		results, err := newNominatim(mockClient).Search(ctx, geocoding.SearchRequest{Query: "some address"})

		require.Error(t, err)
		require.Nil(t, results)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to execute geocoding request")
	})

	t.Run("context cancellation", func(t *testing.T) {
		newCtx, cancel := context.WithCancel(t.Context())
		cancel() // Cancel immediately

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		results, err := newNominatim(mockClient).Search(newCtx, geocoding.SearchRequest{Query: "some address"})

		require.Error(t, err)
		require.Nil(t, results)
	})

	t.Run("custom base URL and country", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "geo.internal", req.URL.Host)
				assert.Equal(t, "ca", req.URL.Query().Get("countrycodes"))
				return jsonResponse(http.StatusOK, `[]`), nil
			},
		}
		provider := geocoding.NewNominatimProviderWithClient(
			mockClient,
			geocoding.NominatimOptions{BaseURL: "http://geo.internal/search", CountryCode: "ca"},
			rate.NewLimiter(rate.Inf, 0),
			slog.Default(),
		)

		_, err := provider.Search(ctx, geocoding.SearchRequest{Query: "Toronto"})

		require.NoError(t, err)
	})
}

func TestNewNominatimProvider(t *testing.T) {
	provider := geocoding.NewNominatimProvider(geocoding.NominatimOptions{}, slog.Default())

	require.NotNil(t, provider)
}
