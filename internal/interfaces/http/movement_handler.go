package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-sync/internal/application/dto"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

// MovementQueries es lo que el handler necesita del servicio de consulta.
type MovementQueries interface {
	GetMovement(ctx context.Context, id string) (*entity.Movement, error)
	GetByMovementID(ctx context.Context, movementID string) (*entity.Movement, error)
	ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error)
	GetDuration(ctx context.Context, id string) (*entity.Movement, float64, error)
}

// MovementHandler sirve las lecturas de movimientos.
type MovementHandler struct {
	queries MovementQueries
}

// NewMovementHandler construye el handler.
func NewMovementHandler(queries MovementQueries) *MovementHandler {
	return &MovementHandler{queries: queries}
}

// GetByID devuelve un movimiento por su ID interno.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "movement_id")
	if !ok {
		return nil
	}
	m, err := h.queries.GetMovement(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewMovementResponse(m))
}

// GetProcessed devuelve el movimiento más reciente para la clave de correlación
// externa: permite a los productores consultar si su evento ya fue conciliado.
// 404 si nunca se procesó un evento con ese movement_id.
func (h *MovementHandler) GetProcessed(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "movement_id")
	if !ok {
		return nil
	}
	m, err := h.queries.GetByMovementID(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewMovementResponse(m))
}

// List devuelve movimientos filtrados por almacén, producto y rango de fechas.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var req dto.ListMovementsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_QUERY", Message: "parámetros inválidos",
		})
	}
	req.DefaultPage()

	filter := repository.MovementFilter{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if req.StartDate != "" {
		from, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_QUERY", Message: "start_date inválido",
			})
		}
		filter.From = &from
	}
	if req.EndDate != "" {
		to, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_QUERY", Message: "end_date inválido",
			})
		}
		filter.To = &to
	}

	movements, err := h.queries.ListMovements(c.Context(), filter)
	if err != nil {
		return errorResponse(c, err)
	}

	list := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		list = append(list, dto.NewMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// GetDuration devuelve la duración en segundos de un movimiento completado.
func (h *MovementHandler) GetDuration(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "movement_id")
	if !ok {
		return nil
	}
	m, seconds, err := h.queries.GetDuration(c.Context(), id)
	if err != nil {
		// En lectura, pedir la duración de un movimiento sin completar es una
		// petición mal formulada, no un conflicto de escritura.
		if errors.Is(err, domain.ErrInvalidMovementState) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "MOVEMENT_NOT_COMPLETED", Message: "el movimiento aún no está completado",
			})
		}
		return errorResponse(c, err)
	}
	return c.JSON(dto.MovementDurationResponse{
		MovementID:      m.ID,
		DurationSeconds: seconds,
		DepartureTime:   m.DepartureTime,
		ArrivalTime:     m.ArrivalTime,
	})
}

// parseUUIDParam valida un path param UUID; escribe la respuesta 400 si no lo es.
func parseUUIDParam(c *fiber.Ctx, name string) (string, bool) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAM", Message: name + " debe ser un UUID",
		})
		return "", false
	}
	return id.String(), true
}
