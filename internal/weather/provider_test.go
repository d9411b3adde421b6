// internal/weather/provider_test.go
package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/48d31kh413k/NavixAI/internal/common/cache"
	"github.com/48d31kh413k/NavixAI/internal/common/config"
	apperrors "github.com/48d31kh413k/NavixAI/internal/common/errors"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/models"
)

const weatherBody = `{
	"weather": [{"main": "Clouds", "description": "scattered clouds"}],
	"main": {"temp": 18.4, "humidity": 72},
	"name": "Springfield"
}`

func newTestStore(t *testing.T) cache.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisFromClient(client)
}

func newProvider(t *testing.T, baseURL, apiKey string) *Provider {
	t.Helper()
	apiCfg := config.WeatherAPIConfig{BaseURL: baseURL, APIKey: apiKey, Timeout: 2000}
	cacheCfg := config.CacheConfig{WeatherTTL: 86400}
	return NewProvider(apiCfg, cacheCfg, newTestStore(t), logger.NewNoOpLogger())
}

func TestCurrentFetchesAndParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		fmt.Fprint(w, weatherBody)
	}))
	defer srv.Close()

	p := newProvider(t, srv.URL, "test-key")
	got, err := p.Current(context.Background(), models.Coordinate{Latitude: 40.7, Longitude: -74.0})

	require.NoError(t, err)
	assert.Equal(t, "Clouds", got.ConditionCode)
	assert.Equal(t, "scattered clouds", got.Description)
	assert.InDelta(t, 18.4, got.TemperatureC, 0.001)
	assert.Equal(t, 72, got.HumidityPct)
	assert.Equal(t, "Springfield", got.LocationName)
}

func TestCurrentSecondCallServedFromCache(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, weatherBody)
	}))
	defer srv.Close()

	p := newProvider(t, srv.URL, "test-key")
	coord := models.Coordinate{Latitude: 40.7128, Longitude: -74.006}

	first, err := p.Current(context.Background(), coord)
	require.NoError(t, err)

	second, err := p.Current(context.Background(), coord)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCurrentNearbyCoordinatesShareKey(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, weatherBody)
	}))
	defer srv.Close()

	p := newProvider(t, srv.URL, "test-key")

	// Differ only past the fourth decimal, so both land on the same key.
	_, err := p.Current(context.Background(), models.Coordinate{Latitude: 40.71281, Longitude: -74.00601})
	require.NoError(t, err)
	_, err = p.Current(context.Background(), models.Coordinate{Latitude: 40.71282, Longitude: -74.00603})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestCurrentMissingCredential(t *testing.T) {
	p := newProvider(t, "http://unused", "")

	_, err := p.Current(context.Background(), models.Coordinate{})

	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCredentialMissing))
}

func TestCurrentUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := newProvider(t, srv.URL, "bad-key")
	_, err := p.Current(context.Background(), models.Coordinate{})

	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUpstreamUnavailable))
}

func TestCacheKeyQuantization(t *testing.T) {
	key := cacheKey(models.Coordinate{Latitude: 40.712845, Longitude: -74.006012})
	assert.Equal(t, "weather_40.7128_-74.0060", key)
}
