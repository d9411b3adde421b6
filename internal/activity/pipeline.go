// internal/activity/pipeline.go
package activity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/48d31kh413k/NavixAI/internal/common/cache"
	"github.com/48d31kh413k/NavixAI/internal/common/config"
	apperrors "github.com/48d31kh413k/NavixAI/internal/common/errors"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/common/metrics"
	"github.com/48d31kh413k/NavixAI/internal/common/observability"
	"github.com/48d31kh413k/NavixAI/internal/keywords"
	"github.com/48d31kh413k/NavixAI/internal/models"
)

// WeatherProvider yields the current weather snapshot for a coordinate.
type WeatherProvider interface {
	Current(ctx context.Context, coord models.Coordinate) (*models.WeatherSnapshot, error)
}

// KeywordProposer turns weather and preferences into activity keywords.
type KeywordProposer interface {
	Propose(ctx context.Context, snapshot *models.WeatherSnapshot, maxCount int, prefs keywords.PreferenceFlags) []string
}

// PlaceSearcher finds places for one activity keyword near a coordinate.
type PlaceSearcher interface {
	Search(ctx context.Context, origin models.Coordinate, keyword string, radiusMeters int) []models.PlaceRecord
}

// Request is the inbound payload for a suggestion run. Latitude and Longitude
// are pointers so a missing field is distinguishable from zero.
type Request struct {
	Latitude      *float64                 `json:"latitude"`
	Longitude     *float64                 `json:"longitude"`
	MaxActivities int                      `json:"max_activities"`
	Preferences   keywords.PreferenceFlags `json:"activities"`
}

// Pipeline orchestrates one suggestion run: weather, keyword proposal, the
// bounded fan-out of place searches, ranking, and result caching.
type Pipeline struct {
	cfg      config.PipelineConfig
	cacheCfg config.CacheConfig
	cache    cache.Store
	weather  WeatherProvider
	proposer KeywordProposer
	places   PlaceSearcher
	obs      *observability.Observability
	logger   logger.Logger

	titleCaser cases.Caser
}

func NewPipeline(
	cfg config.PipelineConfig,
	cacheCfg config.CacheConfig,
	store cache.Store,
	weather WeatherProvider,
	proposer KeywordProposer,
	places PlaceSearcher,
	obs *observability.Observability,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		cacheCfg:   cacheCfg,
		cache:      store,
		weather:    weather,
		proposer:   proposer,
		places:     places,
		obs:        obs,
		logger:     log.With(map[string]interface{}{"component": "pipeline"}),
		titleCaser: cases.Title(language.English),
	}
}

// GetActivities runs the full suggestion pipeline for one request.
func (p *Pipeline) GetActivities(ctx context.Context, req Request) (*models.AggregateResult, error) {
	started := time.Now()

	if req.Latitude == nil || req.Longitude == nil {
		p.obs.RecordRequest(ctx, "bad_request")
		return nil, apperrors.NewBadRequestError("latitude and longitude are required")
	}

	coord := models.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}

	maxActivities := req.MaxActivities
	if maxActivities < 1 {
		maxActivities = p.cfg.DefaultMaxActivities
	}

	key := fmt.Sprintf("multi_activity_%.4f_%.4f_%d_%s",
		coord.Latitude, coord.Longitude, maxActivities, req.Preferences.Fingerprint())

	var cached models.AggregateResult
	ok, err := cache.GetJSON(ctx, p.cache, key, &cached)
	if err != nil {
		p.logger.Warn("result cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	if ok {
		metrics.CacheHits.WithLabelValues("multi_activity").Inc()
		p.recordOutcome(ctx, "cache_hit", started)
		return &cached, nil
	}
	metrics.CacheMisses.WithLabelValues("multi_activity").Inc()

	snapshot, err := p.weather.Current(ctx, coord)
	if err != nil {
		p.recordOutcome(ctx, "weather_error", started)
		return nil, err
	}

	proposed := p.proposer.Propose(ctx, snapshot, maxActivities, req.Preferences)
	p.logger.Info("keywords proposed", map[string]interface{}{
		"count":    len(proposed),
		"keywords": strings.Join(proposed, ","),
	})

	bundles := p.fanOut(ctx, coord, proposed)

	// Bundles with no places and no error marker carry no information; drop
	// them. Errored bundles stay so the caller can see the degradation.
	kept := bundles[:0]
	degraded := false
	for _, b := range bundles {
		if len(b.Places) == 0 && b.Error == "" {
			continue
		}
		if b.Error != "" {
			degraded = true
		}
		kept = append(kept, b)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].TotalFound > kept[j].TotalFound
	})

	result := &models.AggregateResult{
		Activities: kept,
		Weather:    *snapshot,
		Location: models.LocationMeta{
			Latitude:  coord.Latitude,
			Longitude: coord.Longitude,
			City:      snapshot.LocationName,
		},
	}

	if err := p.cache.Set(ctx, key, result, p.cacheCfg.ResultTTLDuration()); err != nil {
		p.logger.Warn("result cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	outcome := "success"
	if degraded {
		outcome = "partial"
	}
	p.recordOutcome(ctx, outcome, started)
	return result, nil
}

var errSearchTimeout = errors.New("search timed out")

// fanOut searches every keyword concurrently under the configured concurrency
// bound, with a per-keyword deadline. A search that outlives its deadline is
// abandoned (the call keeps running, the result is discarded) and its bundle
// is marked with an error. The semaphore slot belongs to the search call
// itself, not the waiter: an abandoned call keeps its slot until the provider
// returns, so in-flight provider calls never exceed the bound. The deadline
// clock starts when the keyword is scheduled, so time spent queued for a slot
// counts against it.
func (p *Pipeline) fanOut(ctx context.Context, origin models.Coordinate, proposed []string) []models.ActivityBundle {
	limit := p.cfg.MaxConcurrentSearches
	if len(proposed) < limit {
		limit = len(proposed)
	}
	if limit < 1 {
		limit = 1
	}
	sem := make(chan struct{}, limit)

	bundles := make([]models.ActivityBundle, len(proposed))
	var wg sync.WaitGroup

	for i, keyword := range proposed {
		wg.Add(1)
		go func(idx int, kw string) {
			defer wg.Done()
			bundles[idx] = p.searchOne(ctx, origin, kw, sem)
		}(i, keyword)
	}
	wg.Wait()

	return bundles
}

func (p *Pipeline) searchOne(ctx context.Context, origin models.Coordinate, keyword string, sem chan struct{}) models.ActivityBundle {
	started := time.Now()
	bundle := models.ActivityBundle{
		Keyword:     keyword,
		DisplayName: p.displayName(keyword),
		Places:      []models.PlaceRecord{},
	}

	done := make(chan []models.PlaceRecord, 1)
	go func() {
		sem <- struct{}{}
		defer func() { <-sem }()
		done <- p.places.Search(ctx, origin, keyword, p.cfg.SearchRadiusMeters)
	}()

	timer := time.NewTimer(p.cfg.SearchTimeoutDuration())
	defer timer.Stop()

	select {
	case found := <-done:
		bundle.TotalFound = len(found)
		if len(found) > p.cfg.PlacesPerActivity {
			found = found[:p.cfg.PlacesPerActivity]
		}
		bundle.Places = found
		metrics.SearchDuration.WithLabelValues("ok").Observe(time.Since(started).Seconds())
	case <-timer.C:
		bundle.Error = apperrors.NewPartialDegradationError(keyword, errSearchTimeout).Error()
		metrics.SearchDuration.WithLabelValues("timeout").Observe(time.Since(started).Seconds())
		p.logger.Warn("keyword search timed out", map[string]interface{}{
			"keyword": keyword,
		})
	case <-ctx.Done():
		bundle.Error = apperrors.NewPartialDegradationError(keyword, ctx.Err()).Error()
		metrics.SearchDuration.WithLabelValues("cancelled").Observe(time.Since(started).Seconds())
	}

	return bundle
}

// displayName renders a keyword for presentation: separators become spaces,
// words are title-cased.
func (p *Pipeline) displayName(keyword string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(keyword)
	return p.titleCaser.String(cleaned)
}

func (p *Pipeline) recordOutcome(ctx context.Context, outcome string, started time.Time) {
	elapsed := time.Since(started)
	metrics.PipelineRequests.WithLabelValues(outcome).Inc()
	metrics.PipelineDuration.Observe(elapsed.Seconds())
	p.obs.RecordRequest(ctx, outcome)
	p.obs.RecordDuration(ctx, elapsed, outcome)
}
