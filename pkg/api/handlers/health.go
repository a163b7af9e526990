package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jordanlanch/industrycatalog/pkg/database"
	"github.com/labstack/echo/v4"
)

const healthMessage = "Industry catalog API is running"

// Pinger is anything whose reachability can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process and dependency status
type HealthHandler struct {
	store database.Store
	cache Pinger
}

// NewHealthHandler creates a health handler. cache may be nil when caching is disabled.
func NewHealthHandler(store database.Store, cache Pinger) *HealthHandler {
	return &HealthHandler{
		store: store,
		cache: cache,
	}
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Health godoc
// @Summary Health check
// @Description Always answers 200 while the process is up. database reports whether the startup connection succeeded.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	resp := HealthResponse{
		Status:   "online",
		Message:  healthMessage,
		Database: "disconnected",
		Cache:    "disabled",
	}

	if h.store.Connected() {
		resp.Database = "connected"
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		resp.Cache = "connected"
		if err := h.cache.Ping(ctx); err != nil {
			resp.Cache = "unreachable"
		}
	}

	return c.JSON(http.StatusOK, resp)
}
