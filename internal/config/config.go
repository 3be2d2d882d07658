package config

import (
	"errors"
	"os"
)

// Config holds everything the app needs from the environment.
// It is built ONCE in main() and passed down explicitly, so no package
// ever reads os.Getenv on its own (and no secret lives in a constant).
type Config struct {
	Port      string // HTTP listen port, e.g. "5000"
	DSN       string // MySQL connection string
	JWTSecret string // Signing key for auth tokens
	Env       string // "development" or "production"
	UploadDir string // Where uploaded images are stored
	BaseURL   string // Public base URL used to build image links

	// OrderAtomicItems selects how order items are written during
	// checkout. false (the default) keeps the legacy behavior of one
	// insert per item with no surrounding transaction; true wraps the
	// header and all items in a single transaction. The legacy mode
	// exists for migration testing against the old system.
	OrderAtomicItems bool
}

// Load reads the configuration from environment variables.
// Only the JWT secret and the DSN are mandatory; everything else
// falls back to a sensible development default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		DSN:       os.Getenv("DB_DSN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Env:       os.Getenv("APP_ENV"),
		UploadDir: os.Getenv("UPLOAD_DIR"),
		BaseURL:   os.Getenv("BASE_URL"),

		OrderAtomicItems: os.Getenv("ORDER_ATOMIC_ITEMS") == "true",
	}

	if cfg.DSN == "" {
		return nil, errors.New("DB_DSN environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./public/images"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	return cfg, nil
}

// IsProduction reports whether we are running in production mode.
// Controls the Secure flag on the auth cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
