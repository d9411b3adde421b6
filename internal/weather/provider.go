// internal/weather/provider.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/48d31kh413k/NavixAI/internal/common/cache"
	"github.com/48d31kh413k/NavixAI/internal/common/config"
	apperrors "github.com/48d31kh413k/NavixAI/internal/common/errors"
	"github.com/48d31kh413k/NavixAI/internal/common/httpclient"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/common/metrics"
	"github.com/48d31kh413k/NavixAI/internal/models"
)

// Provider fetches and caches current weather for a coordinate.
//
// The cache TTL is a single unified value (default 24h, see
// config.CacheConfig); a snapshot is never partial, a failed fetch surfaces
// as UpstreamUnavailable.
type Provider struct {
	apiCfg   config.WeatherAPIConfig
	cacheCfg config.CacheConfig
	cache    cache.Store
	client   *httpclient.Client
	logger   logger.Logger
}

func NewProvider(apiCfg config.WeatherAPIConfig, cacheCfg config.CacheConfig, store cache.Store, log logger.Logger) *Provider {
	return &Provider{
		apiCfg:   apiCfg,
		cacheCfg: cacheCfg,
		cache:    store,
		client:   httpclient.New(apiCfg.TimeoutDuration()),
		logger:   log.With(map[string]interface{}{"component": "weather"}),
	}
}

// openWeatherResponse mirrors the fields consumed from the provider payload.
type openWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Name string `json:"name"`
}

// Current returns the weather snapshot for coord, from cache when fresh.
func (p *Provider) Current(ctx context.Context, coord models.Coordinate) (*models.WeatherSnapshot, error) {
	key := cacheKey(coord)

	var cached models.WeatherSnapshot
	ok, err := cache.GetJSON(ctx, p.cache, key, &cached)
	if err != nil {
		p.logger.Warn("weather cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	if ok {
		metrics.CacheHits.WithLabelValues("weather").Inc()
		return &cached, nil
	}
	metrics.CacheMisses.WithLabelValues("weather").Inc()

	if p.apiCfg.APIKey == "" {
		return nil, apperrors.NewCredentialMissingError("weather")
	}

	snapshot, err := p.fetch(ctx, coord)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, snapshot, p.cacheCfg.WeatherTTLDuration()); err != nil {
		p.logger.Warn("weather cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	return snapshot, nil
}

func (p *Provider) fetch(ctx context.Context, coord models.Coordinate) (*models.WeatherSnapshot, error) {
	endpoint, _ := url.Parse(p.apiCfg.BaseURL + "/data/2.5/weather")
	params := url.Values{}
	params.Add("lat", fmt.Sprintf("%f", coord.Latitude))
	params.Add("lon", fmt.Sprintf("%f", coord.Longitude))
	params.Add("appid", p.apiCfg.APIKey)
	params.Add("units", "metric")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError("weather", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues("weather", "error").Inc()
		return nil, apperrors.NewUpstreamUnavailableError("weather", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues("weather", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, apperrors.NewUpstreamUnavailableError("weather", fmt.Errorf("status %d", resp.StatusCode))
	}
	metrics.ProviderRequests.WithLabelValues("weather", "200").Inc()

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamUnavailableError("weather", fmt.Errorf("decode: %w", err))
	}

	snapshot := &models.WeatherSnapshot{
		TemperatureC: payload.Main.Temp,
		HumidityPct:  payload.Main.Humidity,
		LocationName: payload.Name,
	}
	if len(payload.Weather) > 0 {
		snapshot.ConditionCode = payload.Weather[0].Main
		snapshot.Description = payload.Weather[0].Description
	}

	p.logger.Info("weather fetched", map[string]interface{}{
		"location":  snapshot.LocationName,
		"condition": snapshot.ConditionCode,
		"tempC":     snapshot.TemperatureC,
	})

	return snapshot, nil
}

func cacheKey(coord models.Coordinate) string {
	return "weather_" + coord.QuantizedKey()
}
