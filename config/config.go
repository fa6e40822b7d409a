package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Analyzer  AnalyzerConfig
	Filters   FiltersConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Contact   ContactConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AnalyzerConfig holds mock analyzer configuration
type AnalyzerConfig struct {
	MaxUploadBytes int64   `mapstructure:"max_upload_bytes"`
	DelayScale     float64 `mapstructure:"delay_scale"` // 1.0 = real stage delays
	Seed           uint64  `mapstructure:"seed"`        // 0 = unseeded
}

// FiltersConfig holds filter behaviour configuration
type FiltersConfig struct {
	PriceDebounce time.Duration `mapstructure:"price_debounce"`
	FeaturedCount int           `mapstructure:"featured_count"`
	DebugLogging  bool          `mapstructure:"debug_logging"`
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	Store    string        `mapstructure:"store"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
	// how often runtimes of expired sessions are released
	LiveSweepInterval time.Duration `mapstructure:"live_sweep_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // uploads per minute
	Burst int `mapstructure:"burst"`
}

// ContactConfig holds contact form configuration
type ContactConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// A local .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/furnifind/")

	v.SetEnvPrefix("FURNIFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", "15s")

	// Analyzer defaults
	v.SetDefault("analyzer.max_upload_bytes", 10*1024*1024)
	v.SetDefault("analyzer.delay_scale", 1.0)
	v.SetDefault("analyzer.seed", 0)

	// Filter defaults
	v.SetDefault("filters.price_debounce", "300ms")
	v.SetDefault("filters.featured_count", 12)
	v.SetDefault("filters.debug_logging", false)

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.redis_url", "")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.live_sweep_interval", "1m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 20)
	v.SetDefault("ratelimit.burst", 5)

	v.SetDefault("contact.delay", "1s")
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Session.Store != "memory" && config.Session.Store != "redis" {
		return fmt.Errorf("session store must be 'memory' or 'redis', got: %s", config.Session.Store)
	}

	if config.Session.Store == "redis" && config.Session.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when session store is 'redis' (set FURNIFIND_SESSION_REDIS_URL)")
	}

	if config.Analyzer.MaxUploadBytes <= 0 {
		return fmt.Errorf("analyzer max_upload_bytes must be positive, got: %d", config.Analyzer.MaxUploadBytes)
	}

	if config.Analyzer.DelayScale < 0 {
		return fmt.Errorf("analyzer delay_scale must not be negative, got: %v", config.Analyzer.DelayScale)
	}

	if config.Filters.PriceDebounce <= 0 {
		return fmt.Errorf("filters price_debounce must be positive, got: %s", config.Filters.PriceDebounce)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
