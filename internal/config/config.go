package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownCatalogSource        = errors.New("unknown catalog source")
	ErrEmptyCatalogPath            = errors.New("catalog.path is empty")
	ErrInvalidMaxConnections       = errors.New("database.max_connections is out of range")
)

// Catalog sources.
const (
	CatalogSourceFile     = "file"
	CatalogSourceSQLite   = "sqlite"
	CatalogSourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"`       // current application environment (local, dev, production etc)
	LogLevel         string      `mapstructure:"log_level"` // zap level name
	LogFile          string      `mapstructure:"log_file"`  // optional rotated log file, written in addition to stderr
	TelegramAPIToken string      `mapstructure:"-"`         // Telegram API token loaded from environment
	Catalog          Catalog     `mapstructure:"catalog"`
	DB               DB          `mapstructure:"database"` // database configuration section
	Explanation      Explanation `mapstructure:"explanation"`
	Bot              Bot         `mapstructure:"bot"`
}

// Catalog tells where quizzes are loaded from.
type Catalog struct {
	Source string `mapstructure:"source"` // file, sqlite or postgres
	Path   string `mapstructure:"path"`   // catalog file (.json, .yaml, .yml) or SQLite database
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Explanation holds the prefixes used to mark explanation polarity.
type Explanation struct {
	CorrectPrefix   string `mapstructure:"correct_prefix"`
	IncorrectPrefix string `mapstructure:"incorrect_prefix"`
}

// Bot contains Telegram client options.
type Bot struct {
	Debug         bool `mapstructure:"debug"`
	UpdateTimeout int  `mapstructure:"update_timeout"` // long polling timeout in seconds
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks cross-field requirements that defaults cannot express.
func (c *Config) Validate() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	switch c.Catalog.Source {
	case CatalogSourceFile, CatalogSourceSQLite:
		if c.Catalog.Path == "" {
			return ErrEmptyCatalogPath
		}
	case CatalogSourcePostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
		// The pool size is an int32.
		if c.DB.MaxConnections < 1 || c.DB.MaxConnections > math.MaxInt32 {
			return fmt.Errorf("%w: %d", ErrInvalidMaxConnections, c.DB.MaxConnections)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCatalogSource, c.Catalog.Source)
	}

	return nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine, real environment variables still apply.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("catalog.source", CatalogSourceFile)
	v.SetDefault("catalog.path", "assets/quizzes.json")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("explanation.correct_prefix", "Correct:")
	v.SetDefault("explanation.incorrect_prefix", "Incorrect:")
	v.SetDefault("bot.debug", false)
	v.SetDefault("bot.update_timeout", 60)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_file", "LOG_FILE")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
		if cfg.IsProduction() {
			cfg.LogLevel = "info"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
