// internal/places/client.go
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/48d31kh413k/NavixAI/internal/common/cache"
	"github.com/48d31kh413k/NavixAI/internal/common/config"
	apperrors "github.com/48d31kh413k/NavixAI/internal/common/errors"
	"github.com/48d31kh413k/NavixAI/internal/common/httpclient"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/common/metrics"
	"github.com/48d31kh413k/NavixAI/internal/models"
	"github.com/48d31kh413k/NavixAI/internal/travel"
)

const (
	placeholderPhotoURL = "https://via.placeholder.com/800x600"
	maxPlacesPerSearch  = 8
	maxPhotosPerPlace   = 8
	maxReviews          = 5
)

// typeMapping maps activity keywords to explicit provider category types for
// the second search strategy.
var typeMapping = map[string]string{
	"restaurant": "restaurant",
	"cafe":       "cafe",
	"museum":     "museum",
	"park":       "park",
	"shopping":   "shopping_mall",
	"cinema":     "movie_theater",
	"bar":        "bar",
	"gym":        "gym",
}

// TravelEstimator attaches walking/driving legs to a place.
type TravelEstimator interface {
	Between(ctx context.Context, origin, destination models.Coordinate) travel.Estimate
}

// Client queries the places provider with a layered search strategy and
// normalizes results. Search never returns an error: a missing credential or
// total provider failure degrades to fixture data.
type Client struct {
	apiCfg    config.PlacesAPIConfig
	cacheCfg  config.CacheConfig
	cache     cache.Store
	client    *httpclient.Client
	estimator TravelEstimator
	logger    logger.Logger
}

func NewClient(apiCfg config.PlacesAPIConfig, cacheCfg config.CacheConfig, store cache.Store, estimator TravelEstimator, log logger.Logger) *Client {
	return &Client{
		apiCfg:    apiCfg,
		cacheCfg:  cacheCfg,
		cache:     store,
		client:    httpclient.New(apiCfg.TimeoutDuration()),
		estimator: estimator,
		logger:    log.With(map[string]interface{}{"component": "places"}),
	}
}

// Search finds places near origin for the given activity keyword.
func (c *Client) Search(ctx context.Context, origin models.Coordinate, keyword string, radiusMeters int) []models.PlaceRecord {
	if c.apiCfg.APIKey == "" {
		c.logger.Debug("places credential absent, serving mock data", map[string]interface{}{
			"keyword": keyword,
		})
		return mockPlaces(keyword)
	}

	var collected []placeResult
	var strategyFailed bool

	// Strategy A: free-text keyword search against generic establishments.
	results, err := c.nearbySearch(ctx, origin, radiusMeters, keyword, "establishment")
	if err != nil {
		strategyFailed = true
		c.logger.Warn("keyword search failed", map[string]interface{}{
			"keyword": keyword,
			"error":   err.Error(),
		})
	} else {
		collected = append(collected, results...)
	}

	// Strategy B: explicit category type when the keyword yield is thin.
	if len(collected) < 3 {
		if categoryType, ok := typeMapping[keyword]; ok {
			typed, err := c.nearbySearch(ctx, origin, radiusMeters, "", categoryType)
			if err != nil {
				strategyFailed = true
				c.logger.Warn("type search failed", map[string]interface{}{
					"keyword": keyword,
					"type":    categoryType,
					"error":   err.Error(),
				})
			} else {
				for i := range typed {
					if len(typed[i].Photos) > 0 && len(typed[i].Photos) < 3 {
						if richer := c.detailsPhotos(ctx, typed[i].PlaceID); len(richer) > 0 {
							typed[i].Photos = richer
						}
					}
				}
				collected = append(collected, typed...)
			}
		}
	}

	if len(collected) == 0 && strategyFailed {
		c.logger.Warn("all search strategies failed, serving mock data", map[string]interface{}{
			"keyword": keyword,
		})
		return mockPlaces(keyword)
	}

	return c.buildRecords(ctx, origin, dedupe(collected))
}

func (c *Client) nearbySearch(ctx context.Context, origin models.Coordinate, radiusMeters int, keyword, categoryType string) ([]placeResult, error) {
	endpoint, _ := url.Parse(c.apiCfg.BaseURL + "/maps/api/place/nearbysearch/json")
	params := url.Values{}
	params.Add("location", origin.String())
	params.Add("radius", strconv.Itoa(radiusMeters))
	if keyword != "" {
		params.Add("keyword", keyword)
	}
	if categoryType != "" {
		params.Add("type", categoryType)
	}
	params.Add("key", c.apiCfg.APIKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues("places", "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues("places", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, fmt.Errorf("nearby search status %d", resp.StatusCode)
	}
	metrics.ProviderRequests.WithLabelValues("places", "200").Inc()

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode nearby search: %w", err)
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search status %q", payload.Status)
	}

	return payload.Results, nil
}

// detailsPhotos fetches a richer photo list for one place, best effort.
func (c *Client) detailsPhotos(ctx context.Context, placeID string) []photo {
	result, err := c.fetchDetails(ctx, placeID, "photo")
	if err != nil || result == nil {
		return nil
	}
	return result.Photos
}

// dedupe removes duplicate place ids across strategies, first occurrence
// wins.
func dedupe(results []placeResult) []placeResult {
	seen := make(map[string]bool)
	var out []placeResult
	for _, r := range results {
		if r.PlaceID == "" || seen[r.PlaceID] {
			continue
		}
		seen[r.PlaceID] = true
		out = append(out, r)
	}
	return out
}

func (c *Client) buildRecords(ctx context.Context, origin models.Coordinate, results []placeResult) []models.PlaceRecord {
	if len(results) > maxPlacesPerSearch {
		results = results[:maxPlacesPerSearch]
	}

	records := make([]models.PlaceRecord, 0, len(results))
	for _, r := range results {
		record := models.PlaceRecord{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Vicinity:    r.Vicinity,
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
			Categories:  r.Types,
			PhotoURLs:   c.photoURLs(r.Photos),
			PriceLevel:  r.PriceLevel,
		}

		if r.Geometry.Location != nil {
			coord := models.Coordinate{Latitude: r.Geometry.Location.Lat, Longitude: r.Geometry.Location.Lng}
			record.Coordinate = &coord
			estimate := c.estimator.Between(ctx, origin, coord)
			record.Walking = estimate.Walking
			record.Driving = estimate.Driving
		}

		records = append(records, record)
	}
	return records
}

// photoURLs composes photo-fetch URLs from photo references, capped at 8. A
// place with no usable photos gets a single placeholder.
func (c *Client) photoURLs(photos []photo) []string {
	if len(photos) == 0 || c.apiCfg.APIKey == "" {
		return []string{placeholderPhotoURL}
	}

	if len(photos) > maxPhotosPerPlace {
		photos = photos[:maxPhotosPerPlace]
	}

	var urls []string
	for _, p := range photos {
		if p.PhotoReference == "" {
			continue
		}
		urls = append(urls, fmt.Sprintf(
			"%s/maps/api/place/photo?maxwidth=800&photoreference=%s&key=%s",
			c.apiCfg.BaseURL, p.PhotoReference, c.apiCfg.APIKey,
		))
	}
	if len(urls) == 0 {
		return []string{placeholderPhotoURL}
	}
	return urls
}

// detailsFields is the field selection for a full place-details lookup.
const detailsFields = "place_id,name,vicinity,formatted_address,formatted_phone_number," +
	"website,rating,user_ratings_total,price_level,opening_hours," +
	"photo,reviews,url,international_phone_number"

// Details returns the full record for one place, cached for the configured
// TTL. Unlike Search, a missing credential here is an error: there is no
// fixture path for arbitrary place ids.
func (c *Client) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	if c.apiCfg.APIKey == "" {
		return nil, apperrors.NewCredentialMissingError("places")
	}

	key := "place_details_" + placeID

	var cached models.PlaceDetails
	ok, err := cache.GetJSON(ctx, c.cache, key, &cached)
	if err != nil {
		c.logger.Warn("place details cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	if ok {
		metrics.CacheHits.WithLabelValues("place_details").Inc()
		return &cached, nil
	}
	metrics.CacheMisses.WithLabelValues("place_details").Inc()

	result, err := c.fetchDetails(ctx, placeID, detailsFields)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError("places", err)
	}
	if result == nil {
		return nil, apperrors.NewPlaceNotFoundError(placeID)
	}

	details := &models.PlaceDetails{
		PlaceID:                  result.PlaceID,
		Name:                     result.Name,
		Vicinity:                 result.Vicinity,
		FormattedAddress:         result.FormattedAddress,
		FormattedPhoneNumber:     result.FormattedPhoneNumber,
		InternationalPhoneNumber: result.InternationalPhoneNumber,
		Website:                  result.Website,
		URL:                      result.URL,
		Rating:                   result.Rating,
		RatingCount:              result.UserRatingsTotal,
		PriceLevel:               result.PriceLevel,
		PhotoURLs:                c.photoURLs(result.Photos),
	}

	if result.OpeningHours != nil {
		details.OpeningHours = &models.PlaceOpeningHours{
			OpenNow:     result.OpeningHours.OpenNow,
			WeekdayText: result.OpeningHours.WeekdayText,
		}
	}

	reviews := result.Reviews
	if len(reviews) > maxReviews {
		reviews = reviews[:maxReviews]
	}
	details.Reviews = make([]models.PlaceReview, 0, len(reviews))
	for _, rv := range reviews {
		details.Reviews = append(details.Reviews, models.PlaceReview{
			AuthorName:              rv.AuthorName,
			Rating:                  rv.Rating,
			Text:                    rv.Text,
			Time:                    rv.Time,
			RelativeTimeDescription: rv.RelativeTimeDescription,
		})
	}

	if err := c.cache.Set(ctx, key, details, c.cacheCfg.PlaceDetailsTTLDuration()); err != nil {
		c.logger.Warn("place details cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	return details, nil
}

func (c *Client) fetchDetails(ctx context.Context, placeID, fields string) (*detailsResult, error) {
	endpoint, _ := url.Parse(c.apiCfg.BaseURL + "/maps/api/place/details/json")
	params := url.Values{}
	params.Add("place_id", placeID)
	params.Add("fields", fields)
	params.Add("key", c.apiCfg.APIKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues("place_details", "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues("place_details", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, fmt.Errorf("details status %d", resp.StatusCode)
	}
	metrics.ProviderRequests.WithLabelValues("place_details", "200").Inc()

	var payload detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}

	// Only a genuine miss maps to (nil, nil); any other non-OK status
	// (OVER_QUERY_LIMIT, REQUEST_DENIED, ...) is a provider failure.
	switch payload.Status {
	case "OK":
		if payload.Result == nil {
			return nil, nil
		}
		return payload.Result, nil
	case "NOT_FOUND", "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("details status %q", payload.Status)
	}
}
