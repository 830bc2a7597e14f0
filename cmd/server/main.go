package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdg1/budgetcoach/internal/advisor"
	"github.com/sdg1/budgetcoach/internal/app"
	"github.com/sdg1/budgetcoach/internal/auth"
	"github.com/sdg1/budgetcoach/internal/cache"
	"github.com/sdg1/budgetcoach/internal/config"
	"github.com/sdg1/budgetcoach/internal/notify"
	"github.com/sdg1/budgetcoach/internal/seed"
	"github.com/sdg1/budgetcoach/internal/server"
	"github.com/sdg1/budgetcoach/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := logging.Setup()
	cfg := config.Load(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.SeedSample {
		if _, err := seed.Sample(ctx, store, logger); err != nil {
			logger.Error("Failed to insert sample data", "error", err)
		}
	}

	kv := app.OpenCache(ctx, cfg, logger)
	defer kv.Close()

	mailer, err := notify.New(notify.Config{
		Provider: cfg.EmailProvider,
		APIKey:   cfg.EmailAPIKey,
		Sender:   cfg.EmailSender,
	}, logger)
	if err != nil {
		return err
	}

	adv, err := advisor.New(advisor.Config{
		APIKey:           cfg.OpenAIAPIKey,
		BaseURL:          cfg.OpenAIBaseURL,
		Model:            cfg.ModelName,
		SystemPromptPath: cfg.SystemPromptPath,
		Currency:         cfg.AdviceCurrency,
	}, logger)
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	requestLimiter := auth.NewRateLimiter(cfg.OTPRateLimit, cfg.OTPRateWindow)
	verifyLimiter := auth.NewRateLimiter(cfg.OTPVerifyLimit, cfg.OTPRateWindow)
	otp := auth.NewOTPService(kv, mailer, jwtManager, requestLimiter, verifyLimiter, cfg.OTPTTL, logger)

	sweepers := map[string]server.Sweeper{
		"otp_request_limiter": requestLimiter,
		"otp_verify_limiter":  verifyLimiter,
	}
	if mem, ok := kv.(*cache.MemoryCache); ok {
		sweepers["memory_cache"] = mem
	}
	maintenance, err := server.NewMaintenance(logger, sweepers)
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}
	maintenance.Start()
	defer maintenance.Stop()

	e := server.New(server.Deps{
		Store:          store,
		Cache:          kv,
		JWT:            jwtManager,
		OTP:            otp,
		Advisor:        adv,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := server.NewHTTPServer(addr, e)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "grace_period", cfg.ShutdownPeriod)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}
