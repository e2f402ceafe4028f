package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/usecase"
	"github.com/jhoicas/CRM-api/internal/infrastructure/pdf"
)

// ReportHandler reportes descargables del pipeline (solo admin/manager).
type ReportHandler struct {
	leads *usecase.LeadUseCase
	gen   *pdf.PipelineReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(leads *usecase.LeadUseCase, gen *pdf.PipelineReportGenerator) *ReportHandler {
	return &ReportHandler{leads: leads, gen: gen}
}

// PipelinePDF GET /api/reports/pipeline.pdf
func (h *ReportHandler) PipelinePDF(c *fiber.Ctx) error {
	leads, err := h.leads.List(c.Context(), GetActor(c))
	if err != nil {
		return replyError(c, err)
	}
	doc, err := h.gen.Generate(leads, time.Now())
	if err != nil {
		return replyError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pipeline.pdf"`)
	return c.Send(doc)
}
