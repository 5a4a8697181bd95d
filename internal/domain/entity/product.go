package entity

import "time"

// Product representa un producto referenciado por los eventos.
// Solo identidad: el UUID viene del sistema externo y no hay más atributos.
type Product struct {
	ID        string
	CreatedAt time.Time
}
