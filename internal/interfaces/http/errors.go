package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
)

// respondError traduce el error de dominio al contrato legado:
// cuerpo {"error": mensaje} con el status que corresponda a la taxonomía
// (entrada inválida y stock insuficiente → 400, no encontrado → 404, resto → 500).
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInsufficientStock):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrGoodsNotFound), errors.Is(err, domain.ErrRecordNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error()})
}

// notFound responde 404 con el mensaje dado.
func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: msg})
}

// badRequest responde 400 con el mensaje dado.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
