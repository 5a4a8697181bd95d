package event

import "time"

// Tipos de evento de movimiento.
const (
	TypeArrival   = "arrival"
	TypeDeparture = "departure"
)

// MovementEvent es el evento canónico ya validado y normalizado que consume el
// motor de conciliación. Toda la validación ocurre antes de construirlo; el
// procesador confía en su contenido.
type MovementEvent struct {
	MovementID    string
	WarehouseID   string
	ProductID     string
	Quantity      int64
	Timestamp     time.Time
	EventType     string
	WarehouseCode string // opcional, formato WH-####
}
