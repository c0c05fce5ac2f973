package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DataSourceBackend  = "backend"
	DataSourcePostgres = "postgres"
)

type Config struct {
	Environment string
	Host        string
	Port        int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// data
	DataSource  string `toml:"data_source"`
	BackendURL  string `toml:"backend_url"`
	IdentityURL string `toml:"identity_url"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
	// reports
	Timezone              string `toml:"timezone"`
	ReportRateLimitPerMin int    `toml:"report_rate_limit_per_min"`
	SessionTTLMinutes     int    `toml:"session_ttl_minutes"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the toml file and returns the section for the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] is missing", env)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case DataSourceBackend:
		if c.BackendURL == "" {
			return fmt.Errorf("data source [%s] requires backend_url", c.DataSource)
		}
	case DataSourcePostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return fmt.Errorf("data source [%s] requires postgres_host and postgres_db_name", c.DataSource)
		}
	default:
		return fmt.Errorf("unknown data source: [%s]", c.DataSource)
	}

	if c.IdentityURL == "" {
		return fmt.Errorf("identity_url is required")
	}

	return nil
}
