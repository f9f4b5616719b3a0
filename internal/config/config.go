package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type AnalyticsConfig struct {
	RiskPolicy string
}

type SchedulerConfig struct {
	Interval time.Duration
}

type MetricsConfig struct {
	Namespace string
}

type AppConfig struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Analytics AnalyticsConfig
	Scheduler SchedulerConfig
	Metrics   MetricsConfig
}

func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "data/journal.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 7)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 30)
	viper.SetDefault("SNAPSHOT_INTERVAL", "1h")
	viper.SetDefault("ANALYTICS_RISK_POLICY", "pip")
	viper.SetDefault("METRICS_NAMESPACE", "trading_journal")

	interval, err := time.ParseDuration(viper.GetString("SNAPSHOT_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot interval: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("snapshot interval must be positive, got %s", interval)
	}

	cfg := &AppConfig{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(viper.GetString("DATABASE_DRIVER")),
			DSN:    viper.GetString("DATABASE_DSN"),
		},
		Logging: LoggingConfig{
			Level:      viper.GetString("LOG_LEVEL"),
			File:       viper.GetString("LOG_FILE"),
			MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Analytics: AnalyticsConfig{
			RiskPolicy: viper.GetString("ANALYTICS_RISK_POLICY"),
		},
		Scheduler: SchedulerConfig{
			Interval: interval,
		},
		Metrics: MetricsConfig{
			Namespace: viper.GetString("METRICS_NAMESPACE"),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", cfg.Database.Driver)
	}

	return cfg, nil
}
