package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Places    PlacesConfig    `mapstructure:"places"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Client    ClientConfig    `mapstructure:"client"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`
	WriteTimeout   int    `mapstructure:"write_timeout"`
	RequestTimeout int    `mapstructure:"request_timeout"`
	CORSOrigins    string `mapstructure:"cors_origins"`
}

// PlacesConfig configures the Google Places gateway.
type PlacesConfig struct {
	APIKey           string  `mapstructure:"api_key"`
	BaseURL          string  `mapstructure:"base_url"`
	DefaultLat       float64 `mapstructure:"default_lat"`
	DefaultLng       float64 `mapstructure:"default_lng"`
	Radius           uint    `mapstructure:"radius"`
	PageTokenDelayMS int     `mapstructure:"page_token_delay_ms"`
}

// PageTokenDelay returns the configured continuation-token wait.
func (p PlacesConfig) PageTokenDelay() time.Duration {
	return time.Duration(p.PageTokenDelayMS) * time.Millisecond
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// ClientConfig is used by the command-line frontend.
type ClientConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from .env, an optional config file and
// environment variables.
func Load(service string) (*Config, error) {
	_ = godotenv.Load() // OK if missing

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.request_timeout", 15)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("places.api_key", "")
	v.SetDefault("places.base_url", "")
	v.SetDefault("places.default_lat", 40.7128)
	v.SetDefault("places.default_lng", -74.0060)
	v.SetDefault("places.radius", 5000)
	v.SetDefault("places.page_token_delay_ms", 2000)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("client.base_url", "http://localhost:3000")
	v.SetDefault("client.timeout", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: RESTOFINDER_PLACES_API_KEY → places.api_key
	v.SetEnvPrefix("RESTOFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key conventionally lives in GOOGLE_MAPS_API_KEY.
	_ = v.BindEnv("places.api_key", "RESTOFINDER_PLACES_API_KEY", "GOOGLE_MAPS_API_KEY")
	_ = v.BindEnv("log.level", "RESTOFINDER_LOG_LEVEL", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
// The places API key is checked by the server entry point, since the CLI
// does not need one.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Places.DefaultLat < -90 || c.Places.DefaultLat > 90 {
		errs = append(errs, fmt.Sprintf("places.default_lat must be within [-90, 90], got %g", c.Places.DefaultLat))
	}
	if c.Places.DefaultLng < -180 || c.Places.DefaultLng > 180 {
		errs = append(errs, fmt.Sprintf("places.default_lng must be within [-180, 180], got %g", c.Places.DefaultLng))
	}
	if c.Places.Radius == 0 || c.Places.Radius > 50000 {
		errs = append(errs, fmt.Sprintf("places.radius must be 1-50000 meters, got %d", c.Places.Radius))
	}
	if c.Places.PageTokenDelayMS < 0 {
		errs = append(errs, "places.page_token_delay_ms must not be negative")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats.enabled is set")
	}
	if c.Client.BaseURL == "" {
		errs = append(errs, "client.base_url is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
