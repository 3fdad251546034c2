package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var Empty = new(Config)

type Config struct {
	AppEnv          string        `envconfig:"APP_ENV"`
	Port            int           `envconfig:"PORT" default:"8080"`
	SentryDSN       string        `envconfig:"SENTRY_DSN"`
	AllowOrigins    string        `envconfig:"ALLOW_ORIGINS"`
	RateLimit       float64       `envconfig:"RATE_LIMIT" default:"20"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	DB struct {
		Driver       string `envconfig:"DB_DRIVER" default:"postgres"`
		Name         string `envconfig:"DB_NAME"`
		Host         string `envconfig:"DB_HOST"`
		Port         int    `envconfig:"DB_PORT" default:"5432"`
		User         string `envconfig:"DB_USER"`
		Pass         string `envconfig:"DB_PASS"`
		EnableSSL    bool   `envconfig:"ENABLE_SSL"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("load config error: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}

// Origins splits AllowOrigins on commas, dropping blanks.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
