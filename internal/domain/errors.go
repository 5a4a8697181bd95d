package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidEvent         = errors.New("evento inválido")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrNegativeInitialStock = errors.New("no se puede crear stock con cantidad negativa")
	ErrInvalidMovementState = errors.New("estado de movimiento inválido")
)

// InvalidEventError señala qué campo del evento entrante no pasó la validación.
// Es el único error con estructura: el borde HTTP/Kafka necesita el nombre del campo.
type InvalidEventError struct {
	Field  string
	Reason string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("evento inválido: campo %s: %s", e.Field, e.Reason)
}

// Unwrap permite detectar la categoría con errors.Is(err, ErrInvalidEvent).
func (e *InvalidEventError) Unwrap() error { return ErrInvalidEvent }

// NewInvalidEvent construye un InvalidEventError para el campo indicado.
func NewInvalidEvent(field, reason string) error {
	return &InvalidEventError{Field: field, Reason: reason}
}
