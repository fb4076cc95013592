package config

import (
	"os"
	"strconv"

	"fraudreport/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Pipeline PipelineConfig
	Database DatabaseConfig
	Server   ServerConfig
	Report   ReportConfig
}

// DataConfig locates the input dataset.
type DataConfig struct {
	Path string
}

// PipelineConfig holds the analysis parameters.
type PipelineConfig struct {
	Seed          int64
	TrainFraction float64
	Folds         int
	MinorityRatio float64 // undersampling target minority share
	KeepFraction  float64 // plain subsample share of the train split
}

// DatabaseConfig holds the optional result ledger connection.
type DatabaseConfig struct {
	URL string // empty disables persistence
}

// ServerConfig holds the report viewer settings.
type ServerConfig struct {
	Port int
}

// ReportConfig holds output locations.
type ReportConfig struct {
	Dir string
}

// Load reads configuration from the environment (and .env when present) and
// validates it. Invalid values fail fast before any data is read.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Data: DataConfig{
			Path: getEnv("DATA_PATH", "creditcard.csv"),
		},
		Pipeline: PipelineConfig{
			Seed:          getEnvInt64("SEED", 123),
			TrainFraction: getEnvFloat("TRAIN_FRACTION", 0.7),
			Folds:         getEnvInt("FOLDS", 5),
			MinorityRatio: getEnvFloat("MINORITY_RATIO", 0.5),
			KeepFraction:  getEnvFloat("KEEP_FRACTION", 0.1),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Report: ReportConfig{
			Dir: getEnv("REPORT_DIR", "out"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Data.Path == "" {
		return errors.ConfigInvalid("DATA_PATH is required")
	}
	if c.Pipeline.TrainFraction <= 0 || c.Pipeline.TrainFraction >= 1 {
		return errors.ConfigInvalid("TRAIN_FRACTION must be in (0,1)")
	}
	if c.Pipeline.Folds < 2 {
		return errors.ConfigInvalid("FOLDS must be at least 2")
	}
	if c.Pipeline.MinorityRatio <= 0 || c.Pipeline.MinorityRatio >= 1 {
		return errors.ConfigInvalid("MINORITY_RATIO must be in (0,1)")
	}
	if c.Pipeline.KeepFraction <= 0 || c.Pipeline.KeepFraction >= 1 {
		return errors.ConfigInvalid("KEEP_FRACTION must be in (0,1)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.ConfigInvalid("SERVER_PORT must be a valid port")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
