// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like OPENWEATHERMAP_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not present.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in yaml values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig picks up well-known env var names for credentials that
// are still empty after yaml + placeholder expansion.
func overrideEmptyConfig(cfg *Config) {
	if cfg.APIs.Weather.APIKey == "" {
		if val := os.Getenv("OPENWEATHERMAP_API_KEY"); val != "" {
			cfg.APIs.Weather.APIKey = val
		}
	}
	if cfg.APIs.Places.APIKey == "" {
		if val := os.Getenv("GOOGLE_MAPS_API_KEY"); val != "" {
			cfg.APIs.Places.APIKey = val
		}
	}
	if cfg.APIs.GenAI.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.APIs.GenAI.APIKey = val
		}
	}
	if cfg.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Redis.Address = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "navix-server"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}

	if cfg.APIs.Weather.BaseURL == "" {
		cfg.APIs.Weather.BaseURL = "https://api.openweathermap.org"
	}
	if cfg.APIs.Weather.Timeout == 0 {
		cfg.APIs.Weather.Timeout = 5000
	}
	if cfg.APIs.Places.BaseURL == "" {
		cfg.APIs.Places.BaseURL = "https://maps.googleapis.com"
	}
	if cfg.APIs.Places.Timeout == 0 {
		cfg.APIs.Places.Timeout = 5000
	}
	if cfg.APIs.GenAI.BaseURL == "" {
		cfg.APIs.GenAI.BaseURL = "https://api.openai.com"
	}
	if cfg.APIs.GenAI.Model == "" {
		cfg.APIs.GenAI.Model = "gpt-3.5-turbo"
	}
	if cfg.APIs.GenAI.MaxTokens == 0 {
		cfg.APIs.GenAI.MaxTokens = 100
	}
	if cfg.APIs.GenAI.Temperature == 0 {
		cfg.APIs.GenAI.Temperature = 0.7
	}
	if cfg.APIs.GenAI.Timeout == 0 {
		cfg.APIs.GenAI.Timeout = 8000
	}

	if cfg.Cache.WeatherTTL == 0 {
		cfg.Cache.WeatherTTL = 86400
	}
	if cfg.Cache.ResultTTL == 0 {
		cfg.Cache.ResultTTL = 3600
	}
	if cfg.Cache.PlaceDetailsTTL == 0 {
		cfg.Cache.PlaceDetailsTTL = 3600
	}
	if cfg.Cache.PreferenceTTL == 0 {
		cfg.Cache.PreferenceTTL = 30 * 86400
	}

	if cfg.Pipeline.MaxConcurrentSearches == 0 {
		cfg.Pipeline.MaxConcurrentSearches = 5
	}
	if cfg.Pipeline.SearchTimeout == 0 {
		cfg.Pipeline.SearchTimeout = 10
	}
	if cfg.Pipeline.DefaultMaxActivities == 0 {
		cfg.Pipeline.DefaultMaxActivities = 5
	}
	if cfg.Pipeline.PlacesPerActivity == 0 {
		cfg.Pipeline.PlacesPerActivity = 3
	}
	if cfg.Pipeline.SearchRadiusMeters == 0 {
		cfg.Pipeline.SearchRadiusMeters = 15000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Pipeline.MaxConcurrentSearches < 1 {
		return fmt.Errorf("pipeline.max_concurrent_searches must be positive")
	}
	if cfg.Pipeline.PlacesPerActivity < 1 {
		return fmt.Errorf("pipeline.places_per_activity must be positive")
	}
	if cfg.Cache.ResultTTL < 1 {
		return fmt.Errorf("cache.result_ttl must be positive")
	}
	return nil
}
