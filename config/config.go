// Package config lee la configuración del entorno (y de .env si existe).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config es la configuración del storefront.
type Config struct {
	APIURL      string
	AssetsURL   string
	Port        string
	RedisURL    string
	CacheTTL    time.Duration
	DatabaseURL string
	PageLimit   int
	MaxPages    int
	CORSOrigins []string
	SessionTTL  time.Duration
	LogLevel    string
	LogPretty   bool
}

var ErrMissingAPIURL = errors.New("config: FERRE_API_URL no definido")

// LoadEnv carga .env si existe. Que no exista no es un error.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// FromEnv arma la configuración a partir de las variables de entorno.
func FromEnv() (Config, error) {
	cfg := Config{
		APIURL:      strings.TrimRight(os.Getenv("FERRE_API_URL"), "/"),
		AssetsURL:   strings.TrimRight(os.Getenv("FERRE_ASSETS_URL"), "/"),
		Port:        getenv("PORT", "8080"),
		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogPretty:   os.Getenv("LOG_PRETTY") == "1",
	}
	if cfg.APIURL == "" {
		return cfg, ErrMissingAPIURL
	}
	if cfg.AssetsURL == "" {
		cfg.AssetsURL = cfg.APIURL
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", time.Minute); err != nil {
		return cfg, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 12*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.PageLimit, err = intEnv("FERRE_PAGE_LIMIT", 50); err != nil {
		return cfg, err
	}
	if cfg.MaxPages, err = intEnv("FERRE_MAX_PAGES", 20); err != nil {
		return cfg, err
	}

	if v := os.Getenv("FERRE_CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg, nil
}

// Addr es la dirección de escucha del servidor.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s inválido: %q", key, v)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s inválido: %w", key, err)
	}
	return d, nil
}
