package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/analytics"
)

// AnalyticsHandler métricas de conversión (solo admin/manager, en la ruta).
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Analytics GET /api/analytics
func (h *AnalyticsHandler) Analytics(c *fiber.Ctx) error {
	out, err := h.uc.Analytics(c.Context(), GetActor(c))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(out)
}
