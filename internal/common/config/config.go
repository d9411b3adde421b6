// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct. It is built once at
// process start and handed to component constructors; nothing reads API keys
// from the environment after that point.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	APIs     APIsConfig     `mapstructure:"apis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // seconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	Weather WeatherAPIConfig `mapstructure:"weather"`
	Places  PlacesAPIConfig  `mapstructure:"places"`
	GenAI   GenAIConfig      `mapstructure:"genai"`
}

type WeatherAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type PlacesAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type GenAIConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	MaxRetries  int     `mapstructure:"max_retries"`
}

// CacheConfig holds TTLs for every cached artifact, in seconds.
//
// The weather TTL is deliberately a single value. Call sites inherited from
// the original behaviour disagreed (900s, 86400s and 604800s for the same
// key); 86400s is the unified policy.
type CacheConfig struct {
	WeatherTTL      int `mapstructure:"weather_ttl"`       // 86400 = 24h
	ResultTTL       int `mapstructure:"result_ttl"`        // 3600 = 1h
	PlaceDetailsTTL int `mapstructure:"place_details_ttl"` // 3600 = 1h
	PreferenceTTL   int `mapstructure:"preference_ttl"`    // 2592000 = 30d
}

type PipelineConfig struct {
	MaxConcurrentSearches int `mapstructure:"max_concurrent_searches"`
	SearchTimeout         int `mapstructure:"search_timeout"` // seconds, per keyword
	DefaultMaxActivities  int `mapstructure:"default_max_activities"`
	PlacesPerActivity     int `mapstructure:"places_per_activity"`
	SearchRadiusMeters    int `mapstructure:"search_radius_meters"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

func (w WeatherAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(w.Timeout) * time.Millisecond
}

func (p PlacesAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(p.Timeout) * time.Millisecond
}

func (g GenAIConfig) TimeoutDuration() time.Duration {
	return time.Duration(g.Timeout) * time.Millisecond
}

func (c CacheConfig) WeatherTTLDuration() time.Duration {
	return time.Duration(c.WeatherTTL) * time.Second
}

func (c CacheConfig) ResultTTLDuration() time.Duration {
	return time.Duration(c.ResultTTL) * time.Second
}

func (c CacheConfig) PlaceDetailsTTLDuration() time.Duration {
	return time.Duration(c.PlaceDetailsTTL) * time.Second
}

func (c CacheConfig) PreferenceTTLDuration() time.Duration {
	return time.Duration(c.PreferenceTTL) * time.Second
}

func (p PipelineConfig) SearchTimeoutDuration() time.Duration {
	return time.Duration(p.SearchTimeout) * time.Second
}
