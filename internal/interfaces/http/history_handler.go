package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/usecase"
)

const msgRecordNotFound = "registro no encontrado"

// HistoryHandler maneja las peticiones HTTP del historial de operaciones.
type HistoryHandler struct {
	uc *usecase.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar historial de operaciones
// @Description  Del más reciente al más antiguo.
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.HistoryListResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar en el historial por nombre de mercancía
// @Tags         history
// @Produce      json
// @Param        q    query  string  false  "Subcadena de goods_name (vacío = todo)"
// @Success      200  {object}  dto.HistoryListResponse
// @Router       /api/history/search [get]
func (h *HistoryHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un registro del historial
// @Description  Acepta el id numérico o su forma alias (_id).
// @Tags         history
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.HistoryMutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/history/{id} [delete]
func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgRecordNotFound)
	}
	out, err := h.uc.Delete(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, msgRecordNotFound)
	}
	return c.JSON(dto.HistoryMutationResponse{Success: true, Record: out})
}

// Clear godoc
// @Summary      Vaciar el historial completo
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/history/clear [delete]
func (h *HistoryHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
