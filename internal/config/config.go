package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port              int
	DevMode           bool
	LogLevel          string
	DataDir           string
	DatabasePath      string
	HistoryDir        string
	AlphaVantageKey   string
	FinnhubKey        string
	QuoteSyncSchedule string  // cron expression for the quote sync job
	QuoteRatePerMin   int     // token bucket refill rate for quote APIs
	OtherIncome       float64 // assumed non-portfolio income for tax bracketing
	RiskFreeRate      float64 // annual risk-free rate, percent
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	cfg := &Config{
		Port:              getEnvAsInt("PORT", 8080),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DataDir:           dataDir,
		DatabasePath:      getEnv("DATABASE_PATH", dataDir+"/forge.db"),
		HistoryDir:        getEnv("HISTORY_DIR", dataDir+"/history"),
		AlphaVantageKey:   getEnv("ALPHA_VANTAGE_API_KEY", ""),
		FinnhubKey:        getEnv("FINNHUB_API_KEY", ""),
		QuoteSyncSchedule: getEnv("QUOTE_SYNC_SCHEDULE", "0 */15 * * * *"), // every 15 minutes
		QuoteRatePerMin:   getEnvAsInt("QUOTE_RATE_PER_MIN", 5),            // Alpha Vantage free tier
		OtherIncome:       getEnvAsFloat("TAX_OTHER_INCOME", 100000),
		RiskFreeRate:      getEnvAsFloat("RISK_FREE_RATE", 2.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.QuoteRatePerMin <= 0 {
		return fmt.Errorf("QUOTE_RATE_PER_MIN must be positive")
	}

	// Note: API keys optional - without them positions fall back to cost basis

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
