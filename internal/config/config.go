package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	RunMigrations  bool   `toml:"run_migrations"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	AllowedOrigins          []string `toml:"allowed_origins"`
	MutationRateLimitPerMin int      `toml:"mutation_rate_limit_per_min"`
	// caches
	CatalogCacheSizeMB        int `toml:"catalog_cache_size_mb"`
	CatalogCacheTTLSeconds    int `toml:"catalog_cache_ttl_seconds"`
	RecommendationCacheTTLMin int `toml:"recommendation_cache_ttl_min"`
}

func (c *Config) RecommendationCacheTTL() time.Duration {
	return time.Duration(c.RecommendationCacheTTLMin) * time.Minute
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied for the values left out.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.MutationRateLimitPerMin == 0 {
		c.MutationRateLimitPerMin = 120
	}
	if c.CatalogCacheSizeMB == 0 {
		c.CatalogCacheSizeMB = 8
	}
	if c.CatalogCacheTTLSeconds == 0 {
		c.CatalogCacheTTLSeconds = 600
	}
	if c.RecommendationCacheTTLMin == 0 {
		c.RecommendationCacheTTLMin = 30
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		return fmt.Errorf("postgres host, port and db name are required")
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		return fmt.Errorf("redis host and port are required")
	}
	return nil
}
