// Package config loads the service configuration from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = 10000
	defaultSQLitePath     = "./data/budgetcoach.db"
	defaultModel          = "gpt-4o-mini"
	defaultCurrency       = "ETB"
	defaultOTPTTL         = 5 * time.Minute
	defaultOTPRateLimit   = 5
	defaultOTPVerifyLimit = 5
	defaultOTPRateWindow  = 15 * time.Minute
	defaultTokenTTL       = 7 * 24 * time.Hour
	defaultShutdownPeriod = 10 * time.Second
)

// Config holds every setting the server and the seed tool need.
type Config struct {
	Port int

	// DatabaseURL selects Postgres when set; otherwise the SQLite file at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	// RedisURL selects Redis when set; otherwise the in-memory cache is used.
	RedisURL string

	JWTSecret string
	TokenTTL  time.Duration

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	ModelName        string
	SystemPromptPath string
	AdviceCurrency   string

	AllowedOrigins []string

	OTPTTL        time.Duration
	OTPRateLimit   int
	OTPVerifyLimit int
	OTPRateWindow  time.Duration

	EmailProvider string
	EmailAPIKey   string
	EmailSender   string

	SeedSample     bool
	ShutdownPeriod time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load(logger *slog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", "error", err)
	}

	cfg := &Config{
		Port:             GetEnvAsInt("PORT", defaultPort),
		DatabaseURL:      GetEnvAsString("DATABASE_URL", ""),
		SQLitePath:       GetEnvAsString("SQLITE_PATH", defaultSQLitePath),
		RedisURL:         GetEnvAsString("REDIS_URL", ""),
		JWTSecret:        GetEnvAsString("JWT_SECRET", ""),
		TokenTTL:         GetEnvAsDuration("TOKEN_TTL", defaultTokenTTL),
		OpenAIAPIKey:     GetEnvAsString("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    GetEnvAsString("OPENAI_BASE_URL", ""),
		ModelName:        GetEnvAsString("MODEL_NAME", defaultModel),
		SystemPromptPath: GetEnvAsString("SYSTEM_PROMPT_PATH", ""),
		AdviceCurrency:   GetEnvAsString("ADVICE_CURRENCY", defaultCurrency),
		AllowedOrigins:   SplitList(os.Getenv("FRONTEND_URL")),
		OTPTTL:           GetEnvAsDuration("OTP_TTL", defaultOTPTTL),
		OTPRateLimit:     GetEnvAsInt("OTP_RATE_LIMIT", defaultOTPRateLimit),
		OTPVerifyLimit:   GetEnvAsInt("OTP_VERIFY_LIMIT", defaultOTPVerifyLimit),
		OTPRateWindow:    GetEnvAsDuration("OTP_RATE_WINDOW", defaultOTPRateWindow),
		EmailProvider:    strings.ToLower(GetEnvAsString("EMAIL_PROVIDER", "")),
		EmailAPIKey:      GetEnvAsString("EMAIL_API_KEY", ""),
		EmailSender:      GetEnvAsString("EMAIL_SENDER", ""),
		SeedSample:       GetEnvAsBool("SEED_SAMPLE", false),
		ShutdownPeriod:   defaultShutdownPeriod,
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		logger.Warn("JWT_SECRET not set, using a random per-process secret; tokens will not survive restarts")
	}

	logger.Debug("Configuration loaded",
		"port", cfg.Port,
		"postgres", cfg.DatabaseURL != "",
		"redis", cfg.RedisURL != "",
		"llm", cfg.OpenAIAPIKey != "",
		"model", cfg.ModelName,
		"email_provider", cfg.EmailProvider,
		"allowed_origins", cfg.AllowedOrigins,
	)
	return cfg
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsBool gets environment variable as bool with default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SplitList splits a comma-separated value, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}
