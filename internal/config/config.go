package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data source kinds
const (
	SourceCSV        = "csv"
	SourceSQLite     = "sqlite"
	SourceClickHouse = "clickhouse"
)

// Config holds the application configuration
type Config struct {
	Port       string
	DataDir    string
	DataSource string // csv, sqlite or clickhouse
	DBPath     string

	ClickHouse ClickHouseConfig

	JWTSecret      string
	ReloadSchedule string // cron expression, empty disables scheduled reloads
	RateLimit      int
	RateWindow     time.Duration
	AllowedOrigins []string

	ShutdownTimeout time.Duration
}

// ClickHouseConfig holds connection settings for the columnar store
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
	Table    string
}

// Load reads the configuration from the environment, after applying a .env
// file from the working directory if one exists
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] failed to read .env: %v", err)
	}

	port := getEnv("PORT", ":8080")
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		port = ":" + port
	}

	return &Config{
		Port:       port,
		DataDir:    getEnv("DATA_DIR", "data"),
		DataSource: strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
		DBPath:     getEnv("DB_PATH", "./data/solar.db"),
		ClickHouse: ClickHouseConfig{
			Addr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
			Database: getEnv("CLICKHOUSE_DB", "default"),
			Username: getEnv("CLICKHOUSE_USER", "default"),
			Password: getEnv("CLICKHOUSE_PASSWORD", ""),
			Table:    getEnv("CLICKHOUSE_TABLE", "solar_observations"),
		},
		JWTSecret:       getEnv("JWT_SECRET", ""),
		ReloadSchedule:  getEnv("RELOAD_SCHEDULE", ""),
		RateLimit:       getEnvInt("RATE_LIMIT", 120),
		RateWindow:      getEnvDuration("RATE_WINDOW", time.Minute),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
