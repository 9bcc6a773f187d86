package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDriver     string // sqlite | mongo
	DBDSN        string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	JWTExpires   time.Duration
	LogFile      string
	CORSOrigins  string
	LoginRateMax int
}

var ErrMissingSecret = errors.New("missing environment variable: JWT_SECRET")

func Load() (Config, error) {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	expires, err := ParseExpiry(getEnv("JWT_EXPIRES", "7d"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES: %w", err)
	}

	cfg := Config{
		Port:         getEnv("PORT", "4000"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:        getEnv("DB_DSN", "novadash.db"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "novadash"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpires:   expires,
		LogFile:      os.Getenv("LOG_FILE"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		LoginRateMax: getEnvAsInt("LOGIN_RATE_MAX", 10),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mongo" {
		return Config{}, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver)
	}

	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s MONGO_DB=%s JWT_EXPIRES=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.MongoDB, cfg.JWTExpires, cfg.LogFile)
	return cfg, nil
}

// ParseExpiry accepts Go durations ("12h", "90m") and whole days ("7d").
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %s", s)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
