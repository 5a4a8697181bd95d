package dto

import (
	"time"

	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
)

// MovementResponse representación HTTP de un movimiento.
type MovementResponse struct {
	ID                     string     `json:"id"`
	MovementID             string     `json:"movement_id"`
	SourceWarehouseID      *string    `json:"source_warehouse_id"`
	DestinationWarehouseID *string    `json:"destination_warehouse_id"`
	ProductID              string     `json:"product_id"`
	Quantity               int64      `json:"quantity"`
	DepartureTime          *time.Time `json:"departure_time"`
	ArrivalTime            *time.Time `json:"arrival_time"`
	Status                 string     `json:"status"`
	QuantityDiff           *int64     `json:"quantity_diff"`
}

// NewMovementResponse mapea la entidad al DTO.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                     m.ID,
		MovementID:             m.MovementID,
		SourceWarehouseID:      m.SourceWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		ProductID:              m.ProductID,
		Quantity:               m.Quantity,
		DepartureTime:          m.DepartureTime,
		ArrivalTime:            m.ArrivalTime,
		Status:                 m.Status,
		QuantityDiff:           m.QuantityDiff,
	}
}

// MovementDurationResponse duración de un movimiento completado.
type MovementDurationResponse struct {
	MovementID      string     `json:"movement_id"`
	DurationSeconds float64    `json:"duration_seconds"`
	DepartureTime   *time.Time `json:"departure_time"`
	ArrivalTime     *time.Time `json:"arrival_time"`
}

// ListMovementsRequest filtros de listado (query params).
type ListMovementsRequest struct {
	WarehouseID string `query:"warehouse_id"`
	ProductID   string `query:"product_id"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
	PageRequest
}
