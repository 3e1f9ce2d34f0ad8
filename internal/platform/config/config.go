package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/srgjo27/tour_booking/internal/platform/database"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	AppAddr     string
	GinMode     string
	LogLevel    string
	Store       string
	DB          database.Config
	RedisAddr   string
	CacheTTL    time.Duration
	CORSOrigins []string
	SeedDemo    bool
}

// Load reads the given .env files (".env" when none) into the process
// environment and then builds the Config from it. Missing files are not an
// error.
func Load(log *slog.Logger, files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		log.Info("no .env file loaded, using process environment", "error", err)
	}

	return FromEnv()
}

func FromEnv() Config {
	cfg := Config{
		AppAddr:  getenv("APP_ADDR", ":3000"),
		GinMode:  getenv("GIN_MODE", ""),
		LogLevel: getenv("LOG_LEVEL", "info"),
		Store:    strings.ToLower(getenv("STORE", StoreMemory)),
		DB: database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", ""),
			DBName:   getenv("DB_NAME", "tour_booking"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		CacheTTL:    getDuration("CACHE_TTL", 5*time.Minute),
		CORSOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
	}

	if host := getenv("REDIS_HOST", ""); host != "" {
		cfg.RedisAddr = host + ":" + getenv("REDIS_PORT", "6379")
	}

	cfg.SeedDemo = getBool("SEED_DEMO", cfg.Store == StoreMemory)

	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
