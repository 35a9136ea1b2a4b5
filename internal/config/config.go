package config

import (
	"errors"
	"os"
	"time"
)

// Config is built once at boot and passed by reference; it is never mutated
// after Load returns.
type Config struct {
	DatabaseURL string
	HTTPPort    string
	JWTSecret   []byte
	JWTTTL      time.Duration
	UploadDir   string
	LogLevel    string
}

// Load reads the process environment. The signing secret and database DSN are
// mandatory: without a secret the server must not serve authenticated routes.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:      time.Hour,
		UploadDir:   getEnv("UPLOAD_DIR", "public/uploads"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET is empty")
	}
	if s := os.Getenv("JWT_TTL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, errors.New("JWT_TTL is not a valid duration")
		}
		cfg.JWTTTL = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
