// Package ingest normaliza las cargas crudas (webhook o mensaje de Kafka) al
// evento canónico que consume el motor de conciliación. Es la única capa de
// validación: lo que pasa esta puerta se procesa sin volver a validar.
package ingest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/event"
)

// warehouseCodePattern formato de código de almacén aceptado en el sobre.
var warehouseCodePattern = regexp.MustCompile(`^WH-\d{4}$`)

// Envelope es el sobre estilo CloudEvents que comparten el webhook y el tópico
// de Kafka. Solo id, source y data se usan; el resto se acepta y se ignora.
type Envelope struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	SpecVersion     string    `json:"specversion,omitempty"`
	Type            string    `json:"type,omitempty"`
	DataContentType string    `json:"datacontenttype,omitempty"`
	Time            int64     `json:"time,omitempty"`
	Subject         string    `json:"subject,omitempty"`
	Destination     string    `json:"destination,omitempty"`
	Data            EventData `json:"data"`
}

// EventData es la parte data del sobre, aún sin validar.
type EventData struct {
	MovementID  string `json:"movement_id"`
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	Timestamp   string `json:"timestamp"`
	Event       string `json:"event"`
}

// ParseEnvelope decodifica un sobre JSON crudo (cuerpo del mensaje de Kafka).
func ParseEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, domain.NewInvalidEvent("body", "JSON inválido: "+err.Error())
	}
	return env, nil
}

// Normalize valida el sobre y construye el evento canónico.
// Cualquier violación devuelve InvalidEventError con el campo ofensor; no se
// llega a tocar almacenamiento.
func Normalize(env Envelope) (event.MovementEvent, error) {
	movementID, err := parseUUID(env.Data.MovementID, "movement_id")
	if err != nil {
		return event.MovementEvent{}, err
	}
	warehouseID, err := parseUUID(env.Data.WarehouseID, "warehouse_id")
	if err != nil {
		return event.MovementEvent{}, err
	}
	productID, err := parseUUID(env.Data.ProductID, "product_id")
	if err != nil {
		return event.MovementEvent{}, err
	}

	if env.Data.Quantity <= 0 {
		return event.MovementEvent{}, domain.NewInvalidEvent("quantity",
			fmt.Sprintf("debe ser un entero positivo, se recibió %d", env.Data.Quantity))
	}

	if env.Data.Timestamp == "" {
		return event.MovementEvent{}, domain.NewInvalidEvent("timestamp", "campo requerido")
	}
	ts, err := time.Parse(time.RFC3339, env.Data.Timestamp)
	if err != nil {
		return event.MovementEvent{}, domain.NewInvalidEvent("timestamp", "formato no reconocido: "+env.Data.Timestamp)
	}

	if env.Data.Event != event.TypeArrival && env.Data.Event != event.TypeDeparture {
		return event.MovementEvent{}, domain.NewInvalidEvent("event", "tipo desconocido: "+env.Data.Event)
	}

	// El código de almacén viene en source (WH-####); si no cumple el formato
	// se descarta y el registro derivará uno provisional.
	code := ""
	if warehouseCodePattern.MatchString(env.Source) {
		code = env.Source
	}

	return event.MovementEvent{
		MovementID:    movementID,
		WarehouseID:   warehouseID,
		ProductID:     productID,
		Quantity:      env.Data.Quantity,
		Timestamp:     ts.UTC(),
		EventType:     env.Data.Event,
		WarehouseCode: code,
	}, nil
}

// parseUUID valida y normaliza un UUID (minúsculas canónicas).
func parseUUID(value, field string) (string, error) {
	if value == "" {
		return "", domain.NewInvalidEvent(field, "campo requerido")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return "", domain.NewInvalidEvent(field, "UUID inválido: "+value)
	}
	return id.String(), nil
}
