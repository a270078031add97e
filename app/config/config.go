package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	Database Database `envconfig:"DB"`
	Auth     Auth     `envconfig:"AUTH"`
	CORS     CORS     `envconfig:"CORS"`
}

// Database is read from DB_* variables.
type Database struct {
	Driver          string        `envconfig:"DRIVER" default:"postgres"`
	DSN             string        `envconfig:"DSN" required:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	SlowThreshold   time.Duration `envconfig:"SLOW_THRESHOLD" default:"200ms"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

// Auth is read from AUTH_* variables.
type Auth struct {
	Secret string `envconfig:"SECRET" required:"true"`
	Issuer string `envconfig:"ISSUER"`
}

// CORS is read from CORS_* variables.
type CORS struct {
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Load reads the given dotenv files (".env" when none are given) into the
// process environment and then decodes the environment into a Config.
// Missing dotenv files are ignored; variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("could not process configuration: %w", err)
	}
	return &cfg, nil
}
