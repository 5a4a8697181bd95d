package repository

import (
	"time"

	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos.
type MovementFilter struct {
	WarehouseID string // coincide contra origen o destino
	ProductID   string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de persistencia para movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// Complete persiste el cierre de un movimiento (destino, llegada, estado, diff).
	// Solo aplica sobre una fila IN_TRANSIT; si otra transacción ya la cerró
	// devuelve ErrInvalidMovementState para que la unidad de trabajo se revierta.
	Complete(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// FindByMovementID busca la fila más reciente para la clave de correlación
	// externa, en cualquier estado; nil si no hay registro.
	FindByMovementID(movementID string) (*entity.Movement, error)
	List(filter MovementFilter) ([]*entity.Movement, error)
}
