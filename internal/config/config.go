// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every configuration validation failure. It is a
// fatal condition: the run must abort before any I/O happens.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the full run configuration loaded from file or environment
// variables. It is constructed once at startup and passed by reference into
// every component; nothing reads ambient state after that.
type Config struct {
	S3BucketName string `mapstructure:"S3_BUCKET_NAME"`
	S3FolderPath string `mapstructure:"S3_FOLDER_PATH"`
	S3FileName   string `mapstructure:"S3_FILE_NAME"`
	DBHost       string `mapstructure:"DB_HOST"`
	DBPort       string `mapstructure:"DB_PORT"`
	DBUser       string `mapstructure:"DB_USER"`
	DBPassword   string `mapstructure:"DB_PASSWORD"`
	DBName       string `mapstructure:"DB_NAME"`
	DBSSLMode    string `mapstructure:"DB_SSLMODE"`
	BatchSize    int    `mapstructure:"BATCH_SIZE"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	Env          string `mapstructure:"APP_ENV"`
}

// LoadConfig loads configuration from config.yml and environment variables.
// Environment variables take precedence over file values when both are set.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; env-only deployments are the common
	// case, so a missing file is not an error.
	_ = viper.ReadInConfig()

	viper.SetDefault("S3_BUCKET_NAME", "")
	viper.SetDefault("S3_FOLDER_PATH", "")
	viper.SetDefault("S3_FILE_NAME", "")
	viper.SetDefault("DB_HOST", "")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("BATCH_SIZE", 1000)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.DBSSLMode = strings.ToLower(strings.TrimSpace(config.DBSSLMode))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"S3_BUCKET_NAME", c.S3BucketName},
		{"S3_FILE_NAME", c.S3FileName},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_PASSWORD", c.DBPassword},
		{"DB_NAME", c.DBName},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalid, r.key)
		}
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: BATCH_SIZE must be positive, got %d", ErrInvalid, c.BatchSize)
	}

	return nil
}

// IsProduction reports whether the run targets a production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
