package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string
	LogLevel  string

	FeedSource        string
	FeedSheetID       string
	FeedURLTemplate   string
	FeedSheetRange    string
	FeedTimeoutMs     int
	FeedSampleDelayMs int

	FeedDefaultRating  float64
	FeedDefaultReviews int
	FeedStableIDs      bool
	CategoryRulesPath  string

	GoogleAPIKey          string
	GoogleCredentialsFile string

	SearchProvider     string
	SearchRateLimitRPS int
	SearchTimeoutMs    int
	GeminiAPIKey       string
	GeminiModel        string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string

	RedisURL   string
	CartTTLMin int

	DatabaseURL string
	MetricsPort string

	RefreshIntervalSec int
	RefreshAutoExport  bool

	ShopName         string
	OrderChatContact string
	OrderEmailFrom   string
	OrderEmailTo     string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "shopdir.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		FeedSource:        strings.ToLower(getEnv("FEED_SOURCE", "csv")),
		FeedSheetID:       getEnv("FEED_SHEET_ID", ""),
		FeedURLTemplate:   getEnv("FEED_URL_TEMPLATE", "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv"),
		FeedSheetRange:    getEnv("FEED_SHEET_RANGE", "A1:Z"),
		FeedTimeoutMs:     getEnvInt("FEED_TIMEOUT_MS", 30000),
		FeedSampleDelayMs: getEnvInt("FEED_SAMPLE_DELAY_MS", 0),

		FeedDefaultRating:  getEnvFloat("FEED_DEFAULT_RATING", 4.5),
		FeedDefaultReviews: getEnvInt("FEED_DEFAULT_REVIEWS", 10),
		FeedStableIDs:      getEnvBool("FEED_STABLE_IDS", false),
		CategoryRulesPath:  getEnv("CATEGORY_RULES_PATH", ""),

		GoogleAPIKey:          getEnv("GOOGLE_API_KEY", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		SearchProvider:     strings.ToLower(getEnv("SEARCH_PROVIDER", "auto")),
		SearchRateLimitRPS: getEnvInt("SEARCH_RATE_LIMIT_RPS", 2),
		SearchTimeoutMs:    getEnvInt("SEARCH_TIMEOUT_MS", 20000),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),

		RedisURL:   getEnv("REDIS_URL", ""),
		CartTTLMin: getEnvInt("CART_TTL_MIN", 30),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		MetricsPort: getEnv("METRICS_PORT", ""),

		RefreshIntervalSec: getEnvInt("REFRESH_INTERVAL_SEC", 300),
		RefreshAutoExport:  getEnvBool("REFRESH_AUTO_EXPORT", true),

		ShopName:         getEnv("SHOP_NAME", "Taungoo Online Shop Group"),
		OrderChatContact: getEnv("ORDER_CHAT_CONTACT", "Viber +95967382800"),
		OrderEmailFrom:   getEnv("ORDER_EMAIL_FROM", ""),
		OrderEmailTo:     getEnv("ORDER_EMAIL_TO", ""),
	}

	return cfg, nil
}

// FeedURL is empty when no sheet is configured.
func (c Config) FeedURL() string {
	id := strings.TrimSpace(c.FeedSheetID)
	if id == "" {
		return ""
	}
	return fmt.Sprintf(c.FeedURLTemplate, id)
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
