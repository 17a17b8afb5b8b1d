package config

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	Model         ModelConfig
	PredictionLog PredictionLogConfig
	Logger        LoggerConfig
	Database      DatabaseConfig
	Training      TrainingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type ModelConfig struct {
	Path          string
	Watch         bool
	WatchDebounce time.Duration
}

type PredictionLogConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type LoggerConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type TrainingConfig struct {
	DatasetPath string
	TestRatio   float64
	Seed        int64
	Estimators  int
	MaxDepth    int
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("MODEL_PATH", "/app/models/wine_model.json.gz")
	v.SetDefault("MODEL_WATCH", true)
	v.SetDefault("MODEL_WATCH_DEBOUNCE", "500ms")
	v.SetDefault("PREDICTION_LOG_PATH", "/app/logs/predictions.log")
	v.SetDefault("PREDICTION_LOG_MAX_SIZE_MB", 100)
	v.SetDefault("PREDICTION_LOG_MAX_BACKUPS", 5)
	v.SetDefault("PREDICTION_LOG_MAX_AGE_DAYS", 0)
	v.SetDefault("PREDICTION_LOG_COMPRESS", false)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "wine_classifier")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("TRAIN_DATASET_PATH", "")
	v.SetDefault("TRAIN_TEST_RATIO", 0.2)
	v.SetDefault("TRAIN_SEED", 42)
	v.SetDefault("TRAIN_ESTIMATORS", 100)
	v.SetDefault("TRAIN_MAX_DEPTH", 0)

	// Env
	v.AutomaticEnv()

	debounce, err := time.ParseDuration(v.GetString("MODEL_WATCH_DEBOUNCE"))
	if err != nil {
		return nil, fmt.Errorf("parse MODEL_WATCH_DEBOUNCE: %w", err)
	}
	connLifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		connLifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Model: ModelConfig{
			Path:          v.GetString("MODEL_PATH"),
			Watch:         v.GetBool("MODEL_WATCH"),
			WatchDebounce: debounce,
		},
		PredictionLog: PredictionLogConfig{
			Path:       v.GetString("PREDICTION_LOG_PATH"),
			MaxSizeMB:  v.GetInt("PREDICTION_LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("PREDICTION_LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("PREDICTION_LOG_MAX_AGE_DAYS"),
			Compress:   v.GetBool("PREDICTION_LOG_COMPRESS"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connLifetime,
		},
		Training: TrainingConfig{
			DatasetPath: v.GetString("TRAIN_DATASET_PATH"),
			TestRatio:   v.GetFloat64("TRAIN_TEST_RATIO"),
			Seed:        v.GetInt64("TRAIN_SEED"),
			Estimators:  v.GetInt("TRAIN_ESTIMATORS"),
			MaxDepth:    v.GetInt("TRAIN_MAX_DEPTH"),
		},
	}

	return cfg, nil
}

// InitLogger applies the level and formatter to the global logrus logger.
func InitLogger(cfg LoggerConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
