package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by storage.driver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Catalog sources accepted by catalog.source.
const (
	CatalogEmbedded = "embedded"
	CatalogPostgres = "postgres"
)

// DefaultSessionSecret signs session tokens when no secret is configured.
// It is public; deployments must set JWT_SECRET.
const DefaultSessionSecret = "dev-session-secret"

// Config holds environment-driven configuration.
type Config struct {
	Addr    string        `mapstructure:"addr"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Contact ContactConfig `mapstructure:"contact"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionConfig controls session tokens. Per-session state idle for longer
// than TTL is swept every SweepInterval.
type SessionConfig struct {
	Secret        string        `mapstructure:"secret"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// UsesDefaultSecret reports whether tokens are signed with the built-in
// development secret.
func (c Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}

// StorageConfig selects where cart snapshots live.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	DatabaseURL string `mapstructure:"database_url"`
}

type CatalogConfig struct {
	Source string `mapstructure:"source"`
}

type ContactConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type CORSConfig struct {
	AllowOrigins string `mapstructure:"allow_origins"`
}

// Load reads configuration from an optional file, the process environment
// and a .env file in the working directory. configPath may be empty.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// legacy variable names still used by deployment scripts
	_ = v.BindEnv("storage.database_url", "STOREFRONT_STORAGE_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("session.secret", "STOREFRONT_SESSION_SECRET", "JWT_SECRET")
	_ = v.BindEnv("addr", "STOREFRONT_ADDR", "ADDR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combinations Load cannot express through defaults.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Catalog.Source {
	case CatalogEmbedded:
	case CatalogPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("catalog.source=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if c.Session.Secret == "" {
		return errors.New("session.secret must not be empty")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return errors.New("session.sweep_interval must be positive")
	}
	if c.Contact.Delay < 0 {
		return errors.New("contact.delay must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("session.sweep_interval", "10m")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite_path", "storefront.db")
	v.SetDefault("storage.database_url", "")
	v.SetDefault("catalog.source", CatalogEmbedded)
	v.SetDefault("contact.delay", "2s")
	v.SetDefault("cors.allow_origins", "*")
}
