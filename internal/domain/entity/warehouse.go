package entity

import "time"

// Warehouse representa un almacén referenciado por los eventos de movimiento.
// El ID (UUID) viene del sistema externo; nunca se genera localmente.
type Warehouse struct {
	ID        string
	Code      string // formato WH-####
	CreatedAt time.Time
}
