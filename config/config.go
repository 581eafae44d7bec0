package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreNone     = "none"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath   string
	OutputDir   string
	ReportTitle string
	RenderPDF   bool
	ChromeBin   string

	StoreDriver      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string

	MaxConcurrency  int
	MaxRetries      int
	LogLevel        string
	SettingsFile    string
	WatchDebounceMs int
	CacheTTLMin     int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		InputPath:   getEnv("INPUT_PATH", "./input"),
		OutputDir:   getEnv("OUTPUT_DIR", "./output"),
		ReportTitle: getEnv("REPORT_TITLE", "Motor Quote Dashboard"),
		RenderPDF:   getEnvBool("RENDER_PDF", false),
		ChromeBin:   getEnv("CHROME_BIN", ""),

		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreNone)),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "quotes"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "quotes123"),
		PostgresDB:       getEnv("POSTGRES_DB", "quotes_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "./output/quotes.db"),

		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SettingsFile:    getEnv("SETTINGS_FILE", "report.yaml"),
		WatchDebounceMs: getEnvInt("WATCH_DEBOUNCE_MS", 1500),
		CacheTTLMin:     getEnvInt("CACHE_TTL_MIN", 30),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
