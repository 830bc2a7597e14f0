package config

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "JWT_SECRET", "MODEL_NAME", "FRONTEND_URL", "OTP_TTL", "OTP_VERIFY_LIMIT", "SEED_SAMPLE"} {
		t.Setenv(key, "")
	}

	cfg := Load(discardLogger())

	if cfg.Port != 10000 {
		t.Errorf("Port = %d, want 10000", cfg.Port)
	}
	if cfg.ModelName != "gpt-4o-mini" {
		t.Errorf("ModelName = %q, want gpt-4o-mini", cfg.ModelName)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Errorf("OTPTTL = %v, want 5m", cfg.OTPTTL)
	}
	if cfg.OTPVerifyLimit != 5 {
		t.Errorf("OTPVerifyLimit = %d, want 5", cfg.OTPVerifyLimit)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("TokenTTL = %v, want 168h", cfg.TokenTTL)
	}
	if len(cfg.JWTSecret) != 64 {
		t.Errorf("expected generated 32-byte hex secret, got %q", cfg.JWTSecret)
	}
	if cfg.SeedSample {
		t.Error("SeedSample should default to false")
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v, want empty", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/sdg1")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("FRONTEND_URL", "http://localhost:5173, https://app.example.org ,")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("OTP_VERIFY_LIMIT", "3")
	t.Setenv("SEED_SAMPLE", "true")
	t.Setenv("EMAIL_PROVIDER", "Resend")

	cfg := Load(discardLogger())

	if cfg.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		t.Error("expected DatabaseURL from env")
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	wantOrigins := []string{"http://localhost:5173", "https://app.example.org"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, wantOrigins) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, wantOrigins)
	}
	if cfg.OTPTTL != 90*time.Second {
		t.Errorf("OTPTTL = %v, want 90s", cfg.OTPTTL)
	}
	if cfg.OTPVerifyLimit != 3 {
		t.Errorf("OTPVerifyLimit = %d, want 3", cfg.OTPVerifyLimit)
	}
	if !cfg.SeedSample {
		t.Error("SeedSample should be true")
	}
	if cfg.EmailProvider != "resend" {
		t.Errorf("EmailProvider = %q, want lowercased resend", cfg.EmailProvider)
	}
}

func TestGetEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_BOOL", "maybe")

	if got := GetEnvAsInt("X_INT", 3); got != 3 {
		t.Errorf("GetEnvAsInt = %d, want 3", got)
	}
	if got := GetEnvAsDuration("X_DUR", time.Second); got != time.Second {
		t.Errorf("GetEnvAsDuration = %v, want 1s", got)
	}
	if got := GetEnvAsBool("X_BOOL", true); !got {
		t.Error("GetEnvAsBool should fall back to true")
	}
}
