package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/bikeshare/dashboard/internal/domain"
)

// Config holds the application configuration read from the environment
type Config struct {
	Env  string `envconfig:"GO_ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	// DatabaseURL selects the Postgres source when set
	DatabaseURL string `envconfig:"DATABASE_URL"`

	DataPath    string `envconfig:"DATA_PATH" default:"data/day.csv"`
	DataBaseDir string `envconfig:"DATA_BASE_DIR"`
	DataSheet   string `envconfig:"DATA_SHEET"`

	ReportVariant string `envconfig:"REPORT_VARIANT" default:"daily"`
	ChartWidth    int    `envconfig:"CHART_WIDTH" default:"1024"`
	ChartHeight   int    `envconfig:"CHART_HEIGHT" default:"480"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	ConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`

	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// Load reads the configuration from environment variables and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Variant returns the parsed default report variant
func (c *Config) Variant() domain.Variant {
	v, err := domain.ParseVariant(c.ReportVariant, domain.VariantDaily)
	if err != nil {
		return domain.VariantDaily
	}
	return v
}

// UsePostgres reports whether the dataset is read from the database
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// IsProduction reports whether GO_ENV is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) validate() error {
	if _, err := domain.ParseVariant(c.ReportVariant, domain.VariantDaily); err != nil {
		return err
	}
	if c.DataPath == "" && c.DatabaseURL == "" {
		return fmt.Errorf("either DATA_PATH or DATABASE_URL must be set")
	}
	if c.ChartWidth < 200 || c.ChartHeight < 150 {
		return fmt.Errorf("chart size %dx%d is too small", c.ChartWidth, c.ChartHeight)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
