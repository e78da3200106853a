package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultTickers is the built-in watchlist used when neither flags nor a
// watchlist file supply symbols.
var DefaultTickers = []string{
	"AAPL",
	"MSFT",
	"GOOGL",
	"AMZN",
	"META",
	"TSLA",
	"SNOW",
	"COIN",
	"NET",
	"MDB",
	"BTG",
	"BTO.TO",
	"GC=F", // Gold futures
	"SI=F", // Silver futures
	"HG=F", // Copper futures
	"LIT",  // Lithium ETF proxy
}

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Provider (price data source)
	Provider ProviderConfig

	// Forecast
	Forecast ForecastConfig

	// Output
	OutputPath string

	// Scheduler
	ScheduleSpec string

	// Logging
	LogLevel  string
	LogFormat string
}

// ProviderConfig holds price provider settings
type ProviderConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
	RateBurst  int
	MaxRetries int
	RetryDelay time.Duration
}

// ForecastConfig holds forecast pipeline settings
type ForecastConfig struct {
	HorizonDays int
	Period      string // provider lookback, e.g. "6mo"
	Model       string // linear | holt
}

// Watchlist is the optional YAML file listing symbols to process.
// 플래그 > 워치리스트 파일 > DefaultTickers 순으로 적용
type Watchlist struct {
	Tickers     []string `yaml:"tickers"`
	HorizonDays int      `yaml:"horizon_days"`
	Period      string   `yaml:"period"`
	Model       string   `yaml:"model"`
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Provider: ProviderConfig{
			BaseURL:    getEnv("PROVIDER_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:    getEnvAsDuration("PROVIDER_TIMEOUT", "30s"),
			RatePerSec: getEnvAsFloat("PROVIDER_RATE_PER_SEC", 2),
			RateBurst:  getEnvAsInt("PROVIDER_RATE_BURST", 4),
			MaxRetries: getEnvAsInt("PROVIDER_MAX_RETRIES", 3),
			RetryDelay: getEnvAsDuration("PROVIDER_RETRY_DELAY", "1s"),
		},

		Forecast: ForecastConfig{
			HorizonDays: getEnvAsInt("FORECAST_HORIZON_DAYS", 7),
			Period:      getEnv("FORECAST_PERIOD", "6mo"),
			Model:       getEnv("FORECAST_MODEL", "linear"),
		},

		OutputPath:   getEnv("OUTPUT_PATH", filepath.Join("data", "summary.json")),
		ScheduleSpec: getEnv("SCHEDULE_SPEC", "0 30 21 * * MON-FRI"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWatchlist reads the optional YAML watchlist file.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist %q: %w", path, err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist %q: %w", path, err)
	}

	return &wl, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Forecast.HorizonDays < 1 {
		return fmt.Errorf("FORECAST_HORIZON_DAYS must be positive")
	}

	if c.Forecast.Model != "linear" && c.Forecast.Model != "holt" {
		return fmt.Errorf("FORECAST_MODEL must be one of: linear, holt")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
