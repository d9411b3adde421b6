// internal/models/weather.go
package models

// WeatherSnapshot holds the current conditions for a coordinate. Immutable
// once fetched; identified by quantized coordinate in the cache.
type WeatherSnapshot struct {
	ConditionCode string  `json:"condition_code"` // provider vocabulary, e.g. "Rain"
	Description   string  `json:"description"`
	TemperatureC  float64 `json:"temperature_celsius"`
	HumidityPct   int     `json:"humidity_percent"`
	LocationName  string  `json:"location_name"`
}
