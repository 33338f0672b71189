package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FaceCounter reports how many encodings the in-memory store holds.
type FaceCounter interface {
	Count() int
}

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db    Pinger
	store FaceCounter
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger, store FaceCounter) *HealthHandler {
	return &HealthHandler{db: db, store: store}
}

// Health GET /health - liveness probe
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"message": "ok",
	})
}

// Ready GET /ready - readiness probe, verifies the database connection
// and reports the warmed store size
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"code":    fiber.StatusServiceUnavailable,
			"message": "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"message": "ready",
		"faces":   h.store.Count(),
	})
}
