package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/usecase"
)

// ReportHandler sirve el reporte PDF del inventario.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Reporte PDF del inventario
// @Description  Lista completa de mercancías más la sección de stock bajo.
// @Tags         goods
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/goods/report [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	pdf, err := h.uc.Generate(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(pdf)
}
