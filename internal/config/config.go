// Package config loads runtime settings from AFROLINGO_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "AFROLINGO"

type (
	Session struct {
		Questions   int           `envconfig:"QUESTIONS" default:"20"`
		MaxHearts   float64       `envconfig:"MAX_HEARTS" default:"5"`
		HeartRefill time.Duration `envconfig:"HEART_REFILL" default:"30m"`
		TTL         time.Duration `envconfig:"TTL" default:"2h"`
	}

	HTTP struct {
		Addr              string        `envconfig:"ADDR" default:":8080"`
		RateLimit         float64       `envconfig:"RATE_LIMIT" default:"25"`
		Timeout           time.Duration `envconfig:"TIMEOUT" default:"10s"`
		ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"10s"`
		AllowOrigins      []string      `envconfig:"ALLOW_ORIGINS" default:"*"`
	}

	Config struct {
		Dev     bool   `envconfig:"DEV" default:"false"`
		DBPath  string `envconfig:"DB_PATH"`
		DataDir string `envconfig:"DATA_DIR"`
		Session Session
		HTTP    HTTP
	}
)

// Load reads envFiles (".env" when none are given) into the process
// environment without overriding variables that are already set, then
// parses the AFROLINGO_* variables. Missing env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var res Config
	if err := envconfig.Process(Prefix, &res); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := res.Validate(); err != nil {
		return Config{}, err
	}
	return res, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Session.Questions < 0 {
		errs = append(errs, fmt.Errorf("%s_SESSION_QUESTIONS must not be negative, got %d", Prefix, c.Session.Questions))
	}
	if c.Session.MaxHearts <= 0 {
		errs = append(errs, fmt.Errorf("%s_SESSION_MAX_HEARTS must be positive, got %v", Prefix, c.Session.MaxHearts))
	}
	if c.Session.HeartRefill <= 0 {
		errs = append(errs, fmt.Errorf("%s_SESSION_HEART_REFILL must be positive, got %v", Prefix, c.Session.HeartRefill))
	}
	if c.HTTP.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s_HTTP_RATE_LIMIT must be positive, got %v", Prefix, c.HTTP.RateLimit))
	}
	return errors.Join(errs...)
}
