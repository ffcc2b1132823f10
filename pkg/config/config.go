package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the synchronizer configuration
type Config struct {
	Source     SourceConfig     `mapstructure:"source"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SourceConfig contains MongoDB source store settings
type SourceConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DatabaseConfig contains warehouse database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// SyncConfig contains batch synchronization settings
type SyncConfig struct {
	BatchSize          int    `mapstructure:"batch_size"`
	PageSize           int    `mapstructure:"page_size"`
	DefaultPayeeNumber string `mapstructure:"default_payee_number"`
}

// MonitoringConfig contains metrics settings
type MonitoringConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MetricsPort int  `mapstructure:"metrics_port"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Credentials are usually injected through the environment, not the file
	_ = viper.BindEnv("source.uri", "SOURCE_MONGO_URI")
	_ = viper.BindEnv("database.host", "WAREHOUSE_DB_HOST")
	_ = viper.BindEnv("database.user", "WAREHOUSE_DB_USER")
	_ = viper.BindEnv("database.password", "WAREHOUSE_DB_PASSWORD")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Source defaults
	viper.SetDefault("source.database", "dealer_ops")
	viper.SetDefault("source.connect_timeout", "10s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.database", "dealer_warehouse")

	// Sync defaults
	viper.SetDefault("sync.batch_size", 500)
	viper.SetDefault("sync.page_size", 1000)
	viper.SetDefault("sync.default_payee_number", "000000")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", false)
	viper.SetDefault("monitoring.metrics_port", 9090)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

func validate(config *Config) error {
	if config.Source.URI == "" {
		return fmt.Errorf("source.uri is required")
	}
	if config.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if config.Sync.BatchSize <= 0 {
		return fmt.Errorf("sync.batch_size must be positive")
	}
	if config.Sync.PageSize <= 0 {
		return fmt.Errorf("sync.page_size must be positive")
	}
	return nil
}
