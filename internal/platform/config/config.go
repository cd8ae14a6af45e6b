// Paket config memusatkan pembacaan variabel lingkungan untuk semua binari.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config menampung seluruh parameter yang dibutuhkan API, worker, dan CLI.
type Config struct {
	HTTPAddress string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AntreanKey        string
	KlasemenCacheKey  string
	KunciEnabled      bool
	KunciPrefix       string
	KunciTimeoutDetik int

	AutoMigrate bool

	WorkerMetricsAddress string
}

func Load() (Config, error) {
	// File .env opsional untuk pengembangan lokal; di container variabel
	// lingkungan asli yang menang.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddress:          getEnv("HTTP_ADDRESS", ":8080"),
		PostgresHost:         getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:         getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:         getEnv("POSTGRES_USER", "mrlks"),
		PostgresPassword:     getEnv("POSTGRES_PASSWORD", "mrlks"),
		PostgresDB:           getEnv("POSTGRES_DB", "mrlks_scoring"),
		PostgresSSLMode:      getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		AntreanKey:           getEnv("REDIS_QUEUE_KEY", "antrean:skor"),
		KlasemenCacheKey:     getEnv("REDIS_KLASEMEN_KEY", "cache:klasemen"),
		KunciEnabled:         getEnvAsBool("KUNCI_AGREGAT_ENABLED", true),
		KunciPrefix:          getEnv("KUNCI_AGREGAT_PREFIX", "kunci"),
		KunciTimeoutDetik:    getEnvAsInt("KUNCI_AGREGAT_TIMEOUT", 10),
		AutoMigrate:          getEnvAsBool("DB_AUTO_MIGRATE", true),
		WorkerMetricsAddress: getEnv("WORKER_METRICS_ADDRESS", ":9090"),
	}

	dbStr := getEnv("REDIS_DB", "0")
	dbInt, err := strconv.Atoi(dbStr)
	if err != nil {
		return Config{}, fmt.Errorf("config: REDIS_DB invalid: %w", err)
	}
	cfg.RedisDB = dbInt

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	// Format DSN kompatibel dengan GORM dan tooling migrasi.
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch value {
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return true
	}
}
