package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "SCORELINE"
	defaultConfigPath = "config/config.yaml"
	configPathEnv     = "SCORELINE_CONFIG_PATH"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads and parses the configuration from file and environment variables.
// ${VAR} placeholders in the YAML are expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// ConfigPathFromEnv returns SCORELINE_CONFIG_PATH or the fallback
func ConfigPathFromEnv(fallback string) string {
	if p := os.Getenv(configPathEnv); p != "" {
		return p
	}
	return fallback
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "scoreline")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "scoreline")
	v.SetDefault("database.user", "scoreline")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("api_football.enabled", true)
	v.SetDefault("api_football.base_url", "https://v3.football.api-sports.io")
	v.SetDefault("api_football.api_key", "")
	v.SetDefault("api_football.timeout_seconds", 20)
	v.SetDefault("api_football.requests_per_second", 5)
	v.SetDefault("api_football.burst", 5)
	v.SetDefault("api_football.retry_attempts", 3)

	v.SetDefault("football_data.enabled", true)
	v.SetDefault("football_data.base_url", "https://api.football-data.org/v4")
	v.SetDefault("football_data.api_key", "")
	v.SetDefault("football_data.timeout_seconds", 20)
	v.SetDefault("football_data.requests_per_second", 0.15)
	v.SetDefault("football_data.burst", 1)
	v.SetDefault("football_data.retry_attempts", 3)

	v.SetDefault("http_client.user_agent", "scoreline/1.0")
	v.SetDefault("http_client.circuit_breaker_threshold", 5)
	v.SetDefault("http_client.circuit_breaker_cooldown_seconds", 60)
	v.SetDefault("http_client.retry_wait_min_millis", 500)
	v.SetDefault("http_client.retry_wait_max_millis", 10000)

	v.SetDefault("cache.catalog_ttl_minutes", 360)
	v.SetDefault("cache.refresh_timeout_seconds", 120)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("prediction.history_years", 5)
	v.SetDefault("prediction.request_timeout_seconds", 60)
	v.SetDefault("prediction.search_limit", 8)

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 90)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.catalog_warmup", "0 */6 * * *")
	v.SetDefault("scheduler.warmup_on_start", true)

	v.SetDefault("secrets.enabled", false)
	v.SetDefault("secrets.region", "eu-west-1")
	v.SetDefault("secrets.secret_name", "")
}
