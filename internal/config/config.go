// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/bkt/internal/bkt"
)

// Config holds all service configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default XDG path.
	DBPath string

	Server ServerConfig
	Model  ModelConfig

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	// StrictSkills maps incoming skill ids onto the skill catalog,
	// sending unknown ids to the fallback skill.
	StrictSkills bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// ModelConfig holds the defaults applied to a (user, skill) pair that has
// no stored state yet.
type ModelConfig struct {
	Prior  float64 // p_known for a first observation
	Params bkt.Params

	// SeedPrior is the p_known written by seed and bootstrap.
	SeedPrior float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			AllowedOrigins:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			ShutdownTimeout: 5 * time.Second,
		},
		Model: ModelConfig{
			Prior:     bkt.DefaultPrior,
			Params:    bkt.DefaultParams(),
			SeedPrior: 0.2,
		},
		LogLevel: "info",
	}
}

// LoadEnvFiles loads variables from the given dotenv files into the process
// environment. Missing files are skipped and variables that are already set
// are left alone.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if p := os.Getenv("BKT_DB"); p != "" {
		cfg.DBPath = p
	}
	if a := os.Getenv("BKT_ADDR"); a != "" {
		cfg.Server.Addr = a
	}
	if o := os.Getenv("BKT_ALLOWED_ORIGINS"); o != "" {
		cfg.Server.AllowedOrigins = splitList(o)
	}
	if l := os.Getenv("BKT_LOG_LEVEL"); l != "" {
		cfg.LogLevel = strings.ToLower(l)
	}
	if s := os.Getenv("BKT_STRICT_SKILLS"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("BKT_STRICT_SKILLS: %w", err))
		} else {
			cfg.StrictSkills = v
		}
	}
	if d := os.Getenv("BKT_SHUTDOWN_TIMEOUT"); d != "" {
		v, err := time.ParseDuration(d)
		if err != nil {
			errs = append(errs, fmt.Errorf("BKT_SHUTDOWN_TIMEOUT: %w", err))
		} else {
			cfg.Server.ShutdownTimeout = v
		}
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{"BKT_DEFAULT_P_KNOWN", &cfg.Model.Prior},
		{"BKT_DEFAULT_P_LEARN", &cfg.Model.Params.Learn},
		{"BKT_DEFAULT_P_GUESS", &cfg.Model.Params.Guess},
		{"BKT_DEFAULT_P_SLIP", &cfg.Model.Params.Slip},
		{"BKT_SEED_P_KNOWN", &cfg.Model.SeedPrior},
	}
	for _, f := range floats {
		s := os.Getenv(f.env)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.env, err))
			continue
		}
		*f.dst = v
	}

	return cfg, errors.Join(errs...)
}

// Validate checks that model defaults are probabilities and the log level
// is known.
func (c Config) Validate() error {
	errs := []error{
		bkt.ValidateProbability("default p_known", c.Model.Prior),
		bkt.ValidateProbability("seed p_known", c.Model.SeedPrior),
		c.Model.Params.Validate(),
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level: %q", c.LogLevel))
	}

	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
