package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	OrganizerKeySalt string
	ShutdownTimeout  time.Duration
}

// ParseFlags validates flags and fills gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("digital-ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OrganizerKeySalt, "organizer-salt", "", "Organizer key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabasePostgres
		}
	}
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, errors.New("database type must be postgres or sqlite")
	}

	if cfg.ShutdownTimeout == 0 {
		if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return Config{}, errors.New("invalid SHUTDOWN_TIMEOUT env variable")
			}
			cfg.ShutdownTimeout = d
		} else {
			cfg.ShutdownTimeout = 10 * time.Second
		}
	}

	// Secrets - MUST be provided
	if cfg.OrganizerKeySalt == "" {
		cfg.OrganizerKeySalt = os.Getenv("ORGANIZER_KEY_SALT")
	}
	if cfg.OrganizerKeySalt == "" {
		return Config{}, errors.New("ORGANIZER_KEY_SALT required")
	}

	return cfg, nil
}
