package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Location     string
	MaxHospitals int
	MaxReviews   int

	MinDelayMs       int
	MaxDelayMs       int
	ScrollMaxAttempt int
	ScrollWaitMs     int
	SearchTimeoutS   int
	NavTimeoutS      int
	MaxRetries       int

	Headless  bool
	ChromeBin string

	OutputDir    string
	OutputFormat string
	LogFile      string

	SaveToDB         bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Location:     getEnv("LOCATION", "Istanbul, Turkey"),
		MaxHospitals: getEnvInt("MAX_HOSPITALS", 10),
		MaxReviews:   getEnvInt("MAX_REVIEWS", 60),

		MinDelayMs:       getEnvInt("MIN_DELAY_MS", 2000),
		MaxDelayMs:       getEnvInt("MAX_DELAY_MS", 5000),
		ScrollMaxAttempt: getEnvInt("SCROLL_MAX_ATTEMPTS", 5),
		ScrollWaitMs:     getEnvInt("SCROLL_WAIT_MS", 2000),
		SearchTimeoutS:   getEnvInt("SEARCH_TIMEOUT_S", 45),
		NavTimeoutS:      getEnvInt("NAV_TIMEOUT_S", 60),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		Headless:  getEnvBool("HEADLESS", true),
		ChromeBin: getEnv("CHROME_BIN", ""),

		OutputDir:    getEnv("OUTPUT_DIR", "./output"),
		OutputFormat: strings.ToLower(getEnv("OUTPUT_FORMAT", "csv")),
		LogFile:      getEnv("LOG_FILE", "scraper.log"),

		SaveToDB:         getEnvBool("SAVE_TO_DB", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "hospital_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
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

// WriteCSV reports whether CSV output is enabled.
func (c *Config) WriteCSV() bool {
	return c.OutputFormat == "csv" || c.OutputFormat == "both"
}

// WriteJSON reports whether JSON output is enabled.
func (c *Config) WriteJSON() bool {
	return c.OutputFormat == "json" || c.OutputFormat == "both"
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
