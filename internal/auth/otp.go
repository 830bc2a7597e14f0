package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/sdg1/budgetcoach/internal/cache"
)

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6

var (
	ErrInvalidCode     = errors.New("invalid code")
	ErrRateLimited     = errors.New("too many OTP requests")
	ErrTooManyAttempts = errors.New("too many verification attempts")
)

// CodeSender delivers a one-time code to an email address.
type CodeSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// OTPService issues and verifies one-time codes stored in the cache.
type OTPService struct {
	cache          cache.Cache
	sender         CodeSender
	jwt            *JWTManager
	requestLimiter *RateLimiter
	verifyLimiter  *RateLimiter
	ttl            time.Duration
	logger         *slog.Logger
}

// NewOTPService creates an OTP service. requestLimiter bounds code requests
// and verifyLimiter bounds verification attempts, both per email. Either may
// be nil.
func NewOTPService(c cache.Cache, sender CodeSender, jwtManager *JWTManager, requestLimiter, verifyLimiter *RateLimiter, ttl time.Duration, logger *slog.Logger) *OTPService {
	return &OTPService{
		cache:          c,
		sender:         sender,
		jwt:            jwtManager,
		requestLimiter: requestLimiter,
		verifyLimiter:  verifyLimiter,
		ttl:            ttl,
		logger:         logger,
	}
}

func otpKey(email string) string {
	return "otp:" + email
}

// Request generates a code for email, stores it and hands it to the sender.
// A previous unexpired code for the same email is replaced.
func (s *OTPService) Request(ctx context.Context, email string) error {
	if s.requestLimiter != nil && !s.requestLimiter.Allow(email) {
		return ErrRateLimited
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	key := otpKey(email)
	if err := s.cache.SetEx(ctx, key, code, s.ttl); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.sender.SendOTP(ctx, email, code); err != nil {
		if delErr := s.cache.Del(ctx, key); delErr != nil {
			s.logger.Warn("Failed to discard undelivered otp", "email", email, "error", delErr)
		}
		return fmt.Errorf("failed to send otp: %w", err)
	}

	s.logger.Info("OTP issued", "email", email, "ttl", s.ttl)
	return nil
}

// Verify checks code against the stored one and returns a signed token on success.
// A matching code is consumed atomically, so it yields at most one token.
// A wrong code leaves the stored one in place until it expires.
func (s *OTPService) Verify(ctx context.Context, email, code string) (string, error) {
	if s.verifyLimiter != nil && !s.verifyLimiter.Allow(email) {
		s.logger.Warn("OTP verification throttled", "email", email)
		return "", ErrTooManyAttempts
	}

	consumed, err := s.cache.CompareAndDelete(ctx, otpKey(email), code)
	if err != nil {
		return "", fmt.Errorf("failed to consume otp: %w", err)
	}
	if !consumed {
		return "", ErrInvalidCode
	}

	token, err := s.jwt.GenerateForEmail(email)
	if err != nil {
		return "", err
	}
	s.logger.Info("OTP verified", "email", email)
	return token, nil
}

// GenerateCode returns a uniformly random code in 100000..999999.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
