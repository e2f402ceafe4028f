package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
)

// LeadHandler CRUD de leads. La visibilidad por rol la aplica el use case;
// los requisitos de rol por operación se exigen en la ruta.
type LeadHandler struct {
	uc *usecase.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// List GET /api/leads
func (h *LeadHandler) List(c *fiber.Ctx) error {
	leads, err := h.uc.List(c.Context(), GetActor(c))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(leads)
}

// GetByID GET /api/leads/:id
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id inválido", Code: "VALIDATION",
		})
	}
	lead, err := h.uc.Get(c.Context(), GetActor(c), id)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(lead)
}

// Create POST /api/leads
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "cuerpo inválido", Code: "INVALID_BODY",
		})
	}
	if msg := validateBody(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: msg, Code: "VALIDATION",
		})
	}
	lead, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return replyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// Update PUT /api/leads/:id
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id inválido", Code: "VALIDATION",
		})
	}
	var in dto.UpdateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "cuerpo inválido", Code: "INVALID_BODY",
		})
	}
	if msg := validateBody(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: msg, Code: "VALIDATION",
		})
	}
	lead, err := h.uc.Update(c.Context(), GetActor(c), id, in)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(lead)
}

// Delete DELETE /api/leads/:id
// Borra el lead y sus actividades en cascada. Solo admin/manager llegan aquí.
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id inválido", Code: "VALIDATION",
		})
	}
	if err := h.uc.Delete(c.Context(), GetActor(c), id); err != nil {
		return replyError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseID lee el parámetro :id de la ruta. Ids no numéricos o no positivos
// se rechazan antes de tocar el use case.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
