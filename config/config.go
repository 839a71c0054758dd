package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Advisory  AdvisoryConfig  `mapstructure:"advisory"`
	Engine    EngineConfig    `mapstructure:"engine"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	InternalAPIKey string        `mapstructure:"internal_api_key"`
}

// CatalogConfig selects and configures the market dataset source.
// Source is one of "static", "file" or "postgres".
type CatalogConfig struct {
	Source          string        `mapstructure:"source"`
	FilePath        string        `mapstructure:"file_path"`
	DatabaseURL     string        `mapstructure:"database_url"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MinConnections  int           `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// AdvisoryConfig holds the narrative generation configuration
type AdvisoryConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Model         string        `mapstructure:"model"`
	APIKey        string        `mapstructure:"api_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	BranchTimeout time.Duration `mapstructure:"branch_timeout"`
}

// EngineConfig holds the price comparison engine configuration
type EngineConfig struct {
	TransportRatePerKm float64 `mapstructure:"transport_rate_per_km"`
	MinTransportCost   float64 `mapstructure:"min_transport_cost"`
	SpreadThreshold    float64 `mapstructure:"spread_threshold"`
	LongHaulDistanceKm float64 `mapstructure:"long_haul_distance_km"`
	MaxQuotes          int     `mapstructure:"max_quotes"`
}

// RateLimitConfig holds outbound HTTP rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	MaxRetries        int `mapstructure:"max_retries"`
	InitialBackoffMs  int `mapstructure:"initial_backoff_ms"`
	MaxBackoffMs      int `mapstructure:"max_backoff_ms"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Load .env file
	if err := loadEnvFile(); err != nil {
		// .env is optional, log but don't fail
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvPrefix("ADVISOR")

	// Bind env keys for nested config
	bindEnvVars(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// A missing narrative key degrades advice generation; everything else
	// keeps working, so it is a warning rather than a startup failure.
	if cfg.Advisory.APIKey == "" {
		log.Warn().Msg("No narrative API key configured; advice text generation will be unavailable")
	}

	globalConfig = &cfg
	return &cfg, nil
}

// loadEnvFile loads a .env file from the usual locations
func loadEnvFile() error {
	envPaths := []string{".", "./config"}

	for _, path := range envPaths {
		envFile := fmt.Sprintf("%s/.env", path)
		if _, err := os.Stat(envFile); err == nil {
			if err := loadDotEnvFile(envFile); err == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("no .env file found")
}

// loadDotEnvFile reads a .env file and sets environment variables
func loadDotEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			// Remove quotes if present
			value = strings.Trim(value, "\"'")
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Catalog
	v.BindEnv("catalog.database_url", "DATABASE_URL")
	v.BindEnv("catalog.source", "ADVISOR_CATALOG_SOURCE")
	v.BindEnv("catalog.file_path", "ADVISOR_CATALOG_FILE")

	// Advisory
	v.BindEnv("advisory.api_key", "OPENROUTER_API_KEY")
	v.BindEnv("advisory.model", "ADVISOR_MODEL")

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.internal_api_key", "INTERNAL_API_KEY")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Catalog defaults
	v.SetDefault("catalog.source", "static")
	v.SetDefault("catalog.max_connections", 10)
	v.SetDefault("catalog.min_connections", 2)
	v.SetDefault("catalog.max_conn_lifetime", 1*time.Hour)
	v.SetDefault("catalog.max_conn_idle_time", 30*time.Minute)

	// Advisory defaults
	v.SetDefault("advisory.base_url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("advisory.model", "openai/gpt-4o-mini")
	v.SetDefault("advisory.timeout", 20*time.Second)
	v.SetDefault("advisory.branch_timeout", 25*time.Second)

	// Engine defaults
	v.SetDefault("engine.transport_rate_per_km", 5.0)
	v.SetDefault("engine.min_transport_cost", 0.0)
	v.SetDefault("engine.spread_threshold", 0.15)
	v.SetDefault("engine.long_haul_distance_km", 100.0)
	v.SetDefault("engine.max_quotes", 50)

	// Rate limit defaults
	v.SetDefault("rate_limit.requests_per_second", 2)
	v.SetDefault("rate_limit.max_retries", 3)
	v.SetDefault("rate_limit.initial_backoff_ms", 100)
	v.SetDefault("rate_limit.max_backoff_ms", 30000)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// GetDatabaseURL returns the catalog database URL from config or environment
func GetDatabaseURL() string {
	if cfg := Get(); cfg != nil && cfg.Catalog.DatabaseURL != "" {
		return cfg.Catalog.DatabaseURL
	}
	return os.Getenv("DATABASE_URL")
}
