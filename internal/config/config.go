package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultEnv           = "dev"
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultMigrationsDir = "migrations"
	defaultCurrency      = "EUR"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	DBPath        string
	Port          string
	MigrationsDir string
	CatalogPath   string
	Currency      string
	StrictCalc    bool
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Local development convenience; production injects real env vars.
	if err := LoadDotEnv(".env"); err != nil {
		log.Printf("warning: load .env: %v", err)
	}

	cfg := Config{
		Env:           getenv("APP_ENV", defaultEnv),
		DBPath:        getenv("DB_PATH", defaultDBPath),
		Port:          getenv("PORT", defaultPort),
		MigrationsDir: getenv("MIGRATIONS_DIR", defaultMigrationsDir),
		CatalogPath:   os.Getenv("CROP_CATALOG"),
		Currency:      getenv("CURRENCY", defaultCurrency),
	}

	if raw := os.Getenv("CALC_STRICT"); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("warning: CALC_STRICT=%q is not a boolean, using permissive mode", raw)
		}
		cfg.StrictCalc = strict
	}

	return cfg
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Existing variables are not overwritten and a missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
