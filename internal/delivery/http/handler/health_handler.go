package handler

import (
	"context"
	"time"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler accepts a nil cache.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health fails only when the database is unreachable; a missing cache
// degrades reads but does not take the service down.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := dto.HealthResponse{Status: "ok", Database: "up", Cache: "disabled"}
	status := fiber.StatusOK

	if h.db == nil || h.db.Ping(ctx) != nil {
		res.Status = "degraded"
		res.Database = "down"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err == nil {
			res.Cache = "up"
		}
	}

	return response.JSON(c, status, res)
}
