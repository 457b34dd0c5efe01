package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/application/usecase"
)

const msgGoodsNotFound = "mercancía no encontrada"

// GoodsHandler maneja las peticiones HTTP de mercancías.
type GoodsHandler struct {
	uc *usecase.GoodsUseCase
}

// NewGoodsHandler construye el handler.
func NewGoodsHandler(uc *usecase.GoodsUseCase) *GoodsHandler {
	return &GoodsHandler{uc: uc}
}

// List godoc
// @Summary      Listar mercancías
// @Tags         goods
// @Produce      json
// @Success      200  {object}  dto.GoodsListResponse
// @Router       /api/goods [get]
func (h *GoodsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByAlias godoc
// @Summary      Obtener mercancía por _id (compatibilidad cliente legado)
// @Tags         goods
// @Produce      json
// @Param        id   path  string  true  "_id de la mercancía (forma string del id)"
// @Success      200  {object}  dto.GoodsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods/by/_id/{id} [get]
func (h *GoodsHandler) GetByAlias(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgGoodsNotFound)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, msgGoodsNotFound)
	}
	// El contrato legado devuelve el objeto pelado, sin envoltura.
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar mercancías por nombre
// @Tags         goods
// @Produce      json
// @Param        q    query  string  false  "Subcadena del nombre (vacío = todo)"
// @Success      200  {object}  dto.GoodsListResponse
// @Router       /api/goods/search [get]
func (h *GoodsHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear mercancía
// @Tags         goods
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsRequest  true  "name, price y location obligatorios"
// @Success      200   {object}  dto.GoodsMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/goods [post]
func (h *GoodsHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoodsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.GoodsMutationResponse{Success: true, Goods: out})
}

// Update godoc
// @Summary      Actualizar mercancía (parcial)
// @Tags         goods
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la mercancía"
// @Param        body  body  dto.UpdateGoodsRequest  true  "Solo los campos presentes se aplican"
// @Success      200   {object}  dto.GoodsMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [put]
func (h *GoodsHandler) Update(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgGoodsNotFound)
	}
	var in dto.UpdateGoodsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, msgGoodsNotFound)
	}
	return c.JSON(dto.GoodsMutationResponse{Success: true, Goods: out})
}

// Delete godoc
// @Summary      Eliminar mercancía
// @Tags         goods
// @Produce      json
// @Param        id   path  int  true  "ID de la mercancía"
// @Success      200  {object}  dto.GoodsMutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [delete]
func (h *GoodsHandler) Delete(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgGoodsNotFound)
	}
	out, err := h.uc.Delete(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, msgGoodsNotFound)
	}
	return c.JSON(dto.GoodsMutationResponse{Success: true, Goods: out})
}

// StockIn godoc
// @Summary      Entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la mercancía"
// @Param        body  body  dto.StockRequest  true  "quantity > 0, notes opcional"
// @Success      200   {object}  dto.GoodsMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods/{id}/stock_in [post]
func (h *GoodsHandler) StockIn(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgGoodsNotFound)
	}
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.StockIn(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.GoodsMutationResponse{Success: true, Goods: out})
}

// StockOut godoc
// @Summary      Salida de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la mercancía"
// @Param        body  body  dto.StockRequest  true  "quantity > 0, notes opcional"
// @Success      200   {object}  dto.GoodsMutationResponse
// @Failure      400   {object}  dto.ErrorResponse  "cantidad inválida o stock insuficiente"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods/{id}/stock_out [post]
func (h *GoodsHandler) StockOut(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgGoodsNotFound)
	}
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.StockOut(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.GoodsMutationResponse{Success: true, Goods: out})
}

// GetLocation godoc
// @Summary      Consultar ubicación de una mercancía
// @Tags         goods
// @Produce      json
// @Param        id   path  int  true  "ID de la mercancía"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods/{id}/location [get]
func (h *GoodsHandler) GetLocation(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgGoodsNotFound)
	}
	out, err := h.uc.GetLocation(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, msgGoodsNotFound)
	}
	return c.JSON(out)
}

// GetPrice godoc
// @Summary      Consultar precio de una mercancía
// @Tags         goods
// @Produce      json
// @Param        id   path  int  true  "ID de la mercancía"
// @Success      200  {object}  dto.PriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods/{id}/price [get]
func (h *GoodsHandler) GetPrice(c *fiber.Ctx) error {
	id, ok := usecase.ResolveID(c.Params("id"))
	if !ok {
		return notFound(c, msgGoodsNotFound)
	}
	out, err := h.uc.GetPrice(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, msgGoodsNotFound)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Mercancías con stock bajo
// @Description  quantity <= min_quantity, umbral inclusivo.
// @Tags         goods
// @Produce      json
// @Success      200  {object}  dto.GoodsListResponse
// @Router       /api/goods/low_stock [get]
func (h *GoodsHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
