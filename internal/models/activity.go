// internal/models/activity.go
package models

// ActivityBundle is the set of places found for one activity keyword, the
// pipeline's ranking unit. Error carries the marker for a search that failed
// or timed out; such bundles are retained even with zero places.
type ActivityBundle struct {
	Keyword     string        `json:"activity_type"`
	DisplayName string        `json:"activity_name"`
	Places      []PlaceRecord `json:"places"`
	TotalFound  int           `json:"total_places_found"`
	Error       string        `json:"error,omitempty"`
}

// LocationMeta echoes the request coordinate plus the resolved city name.
type LocationMeta struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
}

// AggregateResult is the cached, returned artifact of one pipeline run.
// Activities are sorted by TotalFound descending, ties in arrival order.
type AggregateResult struct {
	Activities []ActivityBundle `json:"activities"`
	Weather    WeatherSnapshot  `json:"weather"`
	Location   LocationMeta     `json:"location"`
}
