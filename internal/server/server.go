// Package server assembles the HTTP API: middleware, routes and error rendering.
package server

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sdg1/budgetcoach/internal/auth"
	"github.com/sdg1/budgetcoach/internal/cache"
	"github.com/sdg1/budgetcoach/internal/middleware"
	"github.com/sdg1/budgetcoach/internal/service"
	"github.com/sdg1/budgetcoach/internal/storage"
)

//go:embed openapi.json
var openapiDoc []byte

// Deps are the collaborators the routes need.
type Deps struct {
	Store   storage.Store
	Cache   cache.Cache
	JWT     *auth.JWTManager
	OTP     *auth.OTPService
	Advisor service.Advisor
	// AllowedOrigins is the CORS allow-list; empty allows any origin.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// New builds the echo instance with every route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = service.NewValidator()
	e.HTTPErrorHandler = errorHandler(d.Logger)

	e.Use(
		echomw.Recover(),
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}),
		middleware.Metrics(),
		middleware.RequestLogger(d.Logger),
		echomw.Secure(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOriginFunc:  allowOrigin(d.AllowedOrigins),
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}),
		echomw.BodyLimit("1M"),
	)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", middleware.OptionalAuth(d.JWT))
	registerRoutes(api, d)
	return e
}

func registerRoutes(api *echo.Group, d Deps) {
	health := service.NewHealthService(d.Store, d.Cache)
	users := service.NewUserService(auth.NewPasswordAuthenticator(d.Store), d.JWT, d.Store, d.Logger)
	households := service.NewHouseholdService(d.Store, d.Logger)
	transactions := service.NewTransactionService(d.Store, d.Logger)
	ai := service.NewAIService(d.Store, d.Advisor)
	otp := service.NewAuthService(d.OTP, d.Logger)

	api.GET("/health", health.Health)
	api.GET("/docs", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openapiDoc)
	})

	a := api.Group("/auth")
	a.POST("/request-otp", otp.RequestOTP)
	a.POST("/verify-otp", otp.VerifyOTP)

	u := api.Group("/users")
	u.POST("/register", users.Register)
	u.POST("/login", users.Login)
	u.GET("/me", users.Me, middleware.RequireAuth(d.JWT))

	h := api.Group("/households")
	h.POST("", households.Create)
	h.GET("/user/:userId", households.GetByUser)
	h.GET("/:householdId/summary", households.Summary)

	t := api.Group("/transactions")
	t.POST("", transactions.Create)
	t.GET("/household/:householdId", transactions.ListByHousehold)

	g := api.Group("/ai")
	g.GET("/budget/:householdId", ai.Budget)
	g.POST("/chat/:householdId", ai.Chat)
}

// allowOrigin admits requests from the allow-list, or from anywhere when it is empty.
func allowOrigin(allowed []string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		if len(allowed) == 0 {
			return true, nil
		}
		return slices.Contains(allowed, origin), nil
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// errorHandler renders every error as {"error": ..., "details": ...}.
// Unexpected errors become a generic 500 and are logged with their cause.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := errorBody{Error: "Internal server error"}

		var apiErr *service.APIError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &apiErr):
			code = apiErr.Code
			body.Error = apiErr.Message
			body.Details = apiErr.Details
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if code < http.StatusInternalServerError {
				body.Error = fmt.Sprint(httpErr.Message)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("Request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			logger.Error("Failed to write error response", "error", writeErr)
		}
	}
}

// NewHTTPServer wraps the handler for HTTP/1.1 and cleartext HTTP/2.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
