package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/analytics"
)

// StatsHandler resumen del dashboard. Accesible para todos los roles; el
// snapshot se restringe a lo visible para el actor.
type StatsHandler struct {
	uc *analytics.UseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *analytics.UseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Stats GET /api/stats
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context(), GetActor(c))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(stats)
}
