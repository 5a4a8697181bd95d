package entity

import "time"

// Estados de un movimiento entre almacenes.
const (
	MovementStatusPending   = "PENDING" // reservado, ningún evento lo produce hoy
	MovementStatusInTransit = "IN_TRANSIT"
	MovementStatusCompleted = "COMPLETED"
	MovementStatusCancelled = "CANCELLED" // solo vía administrativa
)

// Movement correlaciona los eventos departure y arrival de un mismo traslado físico.
// ID es la clave interna de almacenamiento; MovementID es la clave de negocio que
// comparten los dos eventos del mismo traslado.
type Movement struct {
	ID                     string
	MovementID             string
	SourceWarehouseID      *string // null para entradas directas (arrival sin departure)
	DestinationWarehouseID *string // null mientras está en tránsito
	ProductID              string
	Quantity               int64 // cantidad despachada
	DepartureTime          *time.Time
	ArrivalTime            *time.Time
	Status                 string
	QuantityDiff           *int64 // despachado - recibido; null hasta completar
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Duration devuelve la duración del traslado en segundos.
// Solo tiene valor cuando ambos tiempos están registrados.
func (m *Movement) Duration() (float64, bool) {
	if m.DepartureTime == nil || m.ArrivalTime == nil {
		return 0, false
	}
	return m.ArrivalTime.Sub(*m.DepartureTime).Seconds(), true
}
