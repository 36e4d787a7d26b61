// Package config provides configuration management for the Scoreline service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App          AppConfig        `mapstructure:"app" validate:"required"`
	Database     DatabaseConfig   `mapstructure:"database" validate:"required"`
	APIFootball  ProviderConfig   `mapstructure:"api_football" validate:"required"`
	FootballData ProviderConfig   `mapstructure:"football_data" validate:"required"`
	HTTPClient   HTTPClientConfig `mapstructure:"http_client" validate:"required"`
	Cache        CacheConfig      `mapstructure:"cache" validate:"required"`
	Redis        RedisConfig      `mapstructure:"redis"`
	Prediction   PredictionConfig `mapstructure:"prediction" validate:"required"`
	Server       ServerConfig     `mapstructure:"server" validate:"required"`
	Metrics      MetricsConfig    `mapstructure:"metrics"`
	Scheduler    SchedulerConfig  `mapstructure:"scheduler"`
	Secrets      SecretsConfig    `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents the team registry connection
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ProviderConfig represents one external football data provider
type ProviderConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Burst             int     `mapstructure:"burst" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0,lte=10"`
}

// Timeout returns the per-request timeout
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// HTTPClientConfig holds settings shared by all provider clients
type HTTPClientConfig struct {
	UserAgent                     string `mapstructure:"user_agent" validate:"required"`
	CircuitBreakerThreshold       int    `mapstructure:"circuit_breaker_threshold" validate:"required,gt=0"`
	CircuitBreakerCooldownSeconds int    `mapstructure:"circuit_breaker_cooldown_seconds" validate:"required,gt=0"`
	RetryWaitMinMillis            int    `mapstructure:"retry_wait_min_millis" validate:"required,gt=0"`
	RetryWaitMaxMillis            int    `mapstructure:"retry_wait_max_millis" validate:"required,gt=0"`
}

// CacheConfig represents the provider catalog cache
type CacheConfig struct {
	CatalogTTLMinutes     int `mapstructure:"catalog_ttl_minutes" validate:"required,gt=0"`
	RefreshTimeoutSeconds int `mapstructure:"refresh_timeout_seconds" validate:"required,gt=0"`
}

// CatalogTTL returns how long a fetched catalog is considered fresh
func (c CacheConfig) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLMinutes) * time.Minute
}

// RefreshTimeout bounds a single catalog refresh
func (c CacheConfig) RefreshTimeout() time.Duration {
	return time.Duration(c.RefreshTimeoutSeconds) * time.Second
}

// RedisConfig represents the optional shared catalog store
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// PredictionConfig represents prediction pipeline settings
type PredictionConfig struct {
	HistoryYears          int `mapstructure:"history_years" validate:"required,gt=0,lte=20"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	SearchLimit           int `mapstructure:"search_limit" validate:"required,gt=0,lte=50"`
}

// RequestTimeout bounds one end-to-end prediction
func (p PredictionConfig) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSeconds) * time.Second
}

// ServerConfig represents the HTTP API server
type ServerConfig struct {
	Port                int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SchedulerConfig represents background jobs
type SchedulerConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	CatalogWarmup string `mapstructure:"catalog_warmup"`
	WarmupOnStart bool   `mapstructure:"warmup_on_start"`
}

// SecretsConfig points at an AWS Secrets Manager secret overlaid on startup
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the listen address of the HTTP API
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
