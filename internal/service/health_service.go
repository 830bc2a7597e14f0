package service

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sdg1/budgetcoach/internal/cache"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// HealthService reports liveness and which backends are in use.
type HealthService struct {
	store storage.Store
	cache cache.Cache
}

// NewHealthService creates a new health service.
func NewHealthService(store storage.Store, c cache.Cache) *HealthService {
	return &HealthService{store: store, cache: c}
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Cache  string `json:"cache"`
}

// Health always answers 200; it does not check the backends.
func (s *HealthService) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Store:  s.store.Backend(),
		Cache:  s.cache.Backend(),
	})
}
