// Package config loads InsightDeck settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
)

const EnvPrefix = "INSIGHTDECK"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Publish PublishConfig `mapstructure:"publish"`
	Logging LoggingConfig `mapstructure:"logging"`
	Layout  LayoutConfig  `mapstructure:"layout"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig controls the report history. A zero Retention keeps runs forever.
type StorageConfig struct {
	DuckDBPath    string        `mapstructure:"duckdb_path"`
	Retention     time.Duration `mapstructure:"retention"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

type PublishConfig struct {
	S3Bucket   string `mapstructure:"s3_bucket"`
	S3Prefix   string `mapstructure:"s3_prefix"`
	AWSProfile string `mapstructure:"aws_profile"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// LayoutConfig holds page spacing in inches.
type LayoutConfig struct {
	MarginX float64 `mapstructure:"margin_x"`
	MarginY float64 `mapstructure:"margin_y"`
	Gap     float64 `mapstructure:"gap"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.duckdb_path", "")
	v.SetDefault("storage.retention", 30*24*time.Hour)
	v.SetDefault("storage.prune_interval", time.Hour)
	v.SetDefault("publish.s3_bucket", "")
	v.SetDefault("publish.s3_prefix", "reports/")
	v.SetDefault("publish.aws_profile", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("layout.margin_x", 0.8)
	v.SetDefault("layout.margin_y", 0.6)
	v.SetDefault("layout.gap", 0.25)
}

// Load reads path when it is non-empty and exists, then applies INSIGHTDECK_* overrides.
// SERVER_HOST and SERVER_PORT are honored without the prefix.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.host", EnvPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "SERVER_PORT")
	_ = v.BindEnv("logging.level", EnvPrefix+"_LOGGING_LEVEL", "LOG_LEVEL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive")
	}
	if c.Storage.Retention < 0 || c.Storage.PruneInterval < 0 {
		return fmt.Errorf("storage durations must not be negative")
	}
	if c.Layout.MarginX < 0 || c.Layout.MarginY < 0 || c.Layout.Gap < 0 {
		return fmt.Errorf("layout spacing must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// MaxUploadBytes is the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB * 1024 * 1024
}

func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Theme is the default theme with the configured spacing.
func (c *Config) Theme() layout.Theme {
	return layout.DefaultTheme().WithSpacing(
		domain.Inches(c.Layout.MarginX),
		domain.Inches(c.Layout.MarginY),
		domain.Inches(c.Layout.Gap),
	)
}
