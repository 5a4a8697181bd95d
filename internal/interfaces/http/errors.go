package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-sync/internal/application/dto"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
)

// errorResponse mapea los errores de dominio a respuestas HTTP.
// Validaciones y reglas de negocio son 4xx con mensaje legible; cualquier otro
// fallo es un 500 genérico sin detalle interno.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidEvent):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_EVENT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrNegativeInitialStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidMovementState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INVALID_MOVEMENT_STATE", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "recurso no encontrado",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno",
		})
	}
}
