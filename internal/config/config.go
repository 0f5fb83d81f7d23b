package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/pharmacy/internal/log"
)

type Application struct {
	Env     string `mapstructure:"env"     json:"env"`
	Host    string `mapstructure:"host"    json:"host"`
	LogPath string `mapstructure:"log_path" json:"log_path"`
	Port    int    `mapstructure:"port"    json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string        `mapstructure:"host"     json:"host"`
	Password string        `mapstructure:"password" json:"-"`
	Database int           `mapstructure:"database" json:"database"`
	Port     uint16        `mapstructure:"port"     json:"port"`
	TTL      time.Duration `mapstructure:"ttl"      json:"ttl"`
}

type Otel struct {
	Host    string `mapstructure:"host"    json:"host"`
	Port    int    `mapstructure:"port"    json:"port"`
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
}

type Storefront struct {
	BackendURL string        `mapstructure:"backend_url" json:"backend_url"`
	Timeout    time.Duration `mapstructure:"timeout"     json:"timeout"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Storefront  `mapstructure:"storefront"  json:"storefront"`
}

const DefaultBackendURL = "http://localhost:8001"

var (
	once   sync.Once
	config *Config
)

// Get loads the config for filename once per process and exits on failure.
func Get(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Ctx(c).
			Str(log.KeyTag, "config Get").
			Str(log.KeyProcess, "initializing config").
			Str("filename", filename).
			Logger()

		logger.Info().Msg("initializing config")
		c = logger.WithContext(c)
		cfg, err := Load(c, filename, "./env")
		if err != nil {
			err = fmt.Errorf("failed initializing config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger.Info().Any(log.KeyConfig, cfg).Msg("initialized config")
	})
	return config
}

// Load reads <paths>/<filename>.yaml over the defaults, then applies an optional .env file
// and the process environment. A missing yaml file is not an error.
func Load(c context.Context, filename string, paths ...string) (Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "config Load").
		Str("filename", filename).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "loading dotenv").Logger()
	logger.Trace().Msg("loading dotenv")
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded, using process environment")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("storefront.backend_url", "BACKEND_URL", "REACT_APP_BACKEND_URL"); err != nil {
		return Config{}, fmt.Errorf("failed binding backend url env with error=%w", err)
	}

	logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
	logger.Trace().Msg("reading config")
	if err := v.ReadInConfig(); err != nil {
		notFound := viper.ConfigFileNotFoundError{}
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed reading config with error=%w", err)
		}
		logger.Debug().Msg("config file not found, using defaults")
	}

	logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
	logger.Trace().Msg("unmarshaling config")
	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed unmarshaling config with error=%w", err)
	}
	cfg.Storefront.BackendURL = strings.TrimRight(strings.Trim(cfg.Storefront.BackendURL, `"'`), "/")
	logger.Trace().Msg("unmarshaled config")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "production")
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8001)
	v.SetDefault("application.log_path", "/var/log/pharmacy.log")

	v.SetDefault("db.name", "pharmacie_saidani")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.username", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 2)

	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.database", 0)
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
	v.SetDefault("otel.enabled", false)

	v.SetDefault("storefront.backend_url", DefaultBackendURL)
	v.SetDefault("storefront.timeout", 15*time.Second)
}
