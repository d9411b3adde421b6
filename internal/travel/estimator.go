// internal/travel/estimator.go
package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/48d31kh413k/NavixAI/internal/common/config"
	"github.com/48d31kh413k/NavixAI/internal/common/httpclient"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/common/metrics"
	"github.com/48d31kh413k/NavixAI/internal/models"
)

// Estimate carries walking and driving legs between two coordinates. Either
// leg may be nil when the provider cannot resolve a route.
type Estimate struct {
	Walking *models.TravelLeg
	Driving *models.TravelLeg
}

// Estimator queries the distance-matrix endpoint for walking and driving
// durations. It never returns an error; anything that goes wrong leaves the
// affected legs nil.
type Estimator struct {
	cfg    config.PlacesAPIConfig
	client *httpclient.Client
	logger logger.Logger
}

func NewEstimator(cfg config.PlacesAPIConfig, log logger.Logger) *Estimator {
	return &Estimator{
		cfg:    cfg,
		client: httpclient.New(cfg.TimeoutDuration()),
		logger: log.With(map[string]interface{}{"component": "travel"}),
	}
}

type matrixResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// Between estimates travel from origin to destination.
func (e *Estimator) Between(ctx context.Context, origin, destination models.Coordinate) Estimate {
	if e.cfg.APIKey == "" {
		return Estimate{}
	}

	return Estimate{
		Walking: e.leg(ctx, origin, destination, "walking"),
		Driving: e.leg(ctx, origin, destination, "driving"),
	}
}

func (e *Estimator) leg(ctx context.Context, origin, destination models.Coordinate, mode string) *models.TravelLeg {
	endpoint, _ := url.Parse(e.cfg.BaseURL + "/maps/api/distancematrix/json")
	params := url.Values{}
	params.Add("origins", origin.String())
	params.Add("destinations", destination.String())
	params.Add("mode", mode)
	params.Add("units", "metric")
	params.Add("key", e.cfg.APIKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil
	}

	resp, err := e.client.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues("distance_matrix", "error").Inc()
		e.logger.Warn("distance matrix request failed", map[string]interface{}{
			"mode":  mode,
			"error": err.Error(),
		})
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues("distance_matrix", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil
	}
	metrics.ProviderRequests.WithLabelValues("distance_matrix", "200").Inc()

	var payload matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}

	if len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return nil
	}
	element := payload.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil
	}

	return &models.TravelLeg{
		DurationText: element.Duration.Text,
		DistanceText: element.Distance.Text,
	}
}
