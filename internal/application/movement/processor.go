// Package movement contiene el motor de conciliación: correlaciona los eventos
// departure y arrival que comparten movement_id en un único registro de
// movimiento, actualizando las existencias de forma atómica.
package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-sync/internal/application/cache"
	"github.com/tu-usuario/warehouse-sync/internal/application/registry"
	"github.com/tu-usuario/warehouse-sync/internal/application/stock"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/event"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
	"github.com/tu-usuario/warehouse-sync/pkg/logger"
)

// Processor procesa eventos canónicos de movimiento. Cada evento es una unidad
// de trabajo transaccional (TxRunner); la invalidación de caché ocurre solo
// después del commit y nunca hace fallar el evento.
type Processor struct {
	txRunner TxRunner
	cache    cache.Store
	log      *logger.Logger
}

// NewProcessor construye el procesador.
func NewProcessor(txRunner TxRunner, cacheStore cache.Store, log *logger.Logger) *Processor {
	return &Processor{txRunner: txRunner, cache: cacheStore, log: log}
}

// ProcessEvent aplica un evento al estado: resuelve entidades, transiciona el
// movimiento y ajusta existencias dentro de una sola transacción. Cualquier
// rechazo (validación de estado, stock insuficiente) revierte todo; no queda
// entidad creada ni delta de stock parcial.
func (p *Processor) ProcessEvent(ctx context.Context, evt event.MovementEvent) (*entity.Movement, error) {
	var (
		result *entity.Movement
		stale  []string
	)

	err := p.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		stockRepo repository.StockItemRepository,
		movementRepo repository.MovementRepository,
	) error {
		warehouse, err := registry.ResolveWarehouse(warehouseRepo, evt.WarehouseID, evt.WarehouseCode)
		if err != nil {
			return err
		}
		if _, err := registry.ResolveProduct(productRepo, evt.ProductID); err != nil {
			return err
		}

		switch evt.EventType {
		case event.TypeDeparture:
			result, err = processDeparture(stockRepo, movementRepo, warehouse, evt)
		case event.TypeArrival:
			result, stale, err = processArrival(stockRepo, movementRepo, warehouse, evt)
		default:
			// La puerta de ingesta ya filtra esto; queda como red de seguridad.
			err = domain.NewInvalidEvent("event", "tipo desconocido: "+evt.EventType)
		}
		if err != nil {
			return err
		}

		stale = append(stale, cache.StockKey(warehouse.ID, evt.ProductID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: el riesgo de lectura obsoleta se acepta antes que fallar la escritura.
	p.cache.Invalidate(ctx, stale...)

	p.log.Info().
		Str("movement_id", evt.MovementID).
		Str("warehouse_id", evt.WarehouseID).
		Str("event", evt.EventType).
		Int64("quantity", evt.Quantity).
		Msg("evento de movimiento procesado")
	return result, nil
}

// processDeparture da de alta el movimiento IN_TRANSIT y descuenta el stock del
// almacén de origen. Un departure para un movement_id ya registrado (en
// tránsito o cerrado) es un error de datos.
func processDeparture(
	stockRepo repository.StockItemRepository,
	movementRepo repository.MovementRepository,
	warehouse *entity.Warehouse,
	evt event.MovementEvent,
) (*entity.Movement, error) {
	existing, err := movementRepo.FindByMovementID(evt.MovementID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == entity.MovementStatusInTransit {
			return nil, fmt.Errorf("%w: departure duplicado para movement_id %s",
				domain.ErrInvalidMovementState, evt.MovementID)
		}
		return nil, fmt.Errorf("%w: movement_id %s ya cerrado (%s)",
			domain.ErrInvalidMovementState, evt.MovementID, existing.Status)
	}

	if _, err := stock.Adjust(stockRepo, warehouse.ID, evt.ProductID, -evt.Quantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	departureTime := evt.Timestamp
	m := &entity.Movement{
		ID:                uuid.New().String(),
		MovementID:        evt.MovementID,
		SourceWarehouseID: &warehouse.ID,
		ProductID:         evt.ProductID,
		Quantity:          evt.Quantity,
		DepartureTime:     &departureTime,
		Status:            entity.MovementStatusInTransit,
		QuantityDiff:      nil, // se fija cuando llega el arrival
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := movementRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// processArrival cierra el movimiento en tránsito si existe, o registra una
// entrada directa COMPLETED con diff 0 si el arrival llegó sin departure previo.
// Suma el stock en el almacén de destino.
func processArrival(
	stockRepo repository.StockItemRepository,
	movementRepo repository.MovementRepository,
	warehouse *entity.Warehouse,
	evt event.MovementEvent,
) (*entity.Movement, []string, error) {
	existing, err := movementRepo.FindByMovementID(evt.MovementID)
	if err != nil {
		return nil, nil, err
	}

	var (
		result *entity.Movement
		stale  []string
	)
	now := time.Now().UTC()
	arrivalTime := evt.Timestamp

	switch {
	case existing == nil:
		// Entrada sin departure en registro: nada contra qué comparar, diff = 0.
		result = &entity.Movement{
			ID:                     uuid.New().String(),
			MovementID:             evt.MovementID,
			DestinationWarehouseID: &warehouse.ID,
			ProductID:              evt.ProductID,
			Quantity:               evt.Quantity,
			ArrivalTime:            &arrivalTime,
			Status:                 entity.MovementStatusCompleted,
			QuantityDiff:           ptrInt64(0),
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := movementRepo.Create(result); err != nil {
			return nil, nil, err
		}

	case existing.Status == entity.MovementStatusInTransit:
		if existing.SourceWarehouseID != nil && *existing.SourceWarehouseID == warehouse.ID {
			return nil, nil, fmt.Errorf("%w: el almacén de llegada debe ser distinto al de salida (%s)",
				domain.ErrInvalidMovementState, warehouse.ID)
		}
		// Positivo = merma en tránsito; negativo = sobrante. Quantity conserva
		// la cantidad despachada para auditoría.
		diff := existing.Quantity - evt.Quantity
		existing.DestinationWarehouseID = &warehouse.ID
		existing.ArrivalTime = &arrivalTime
		existing.Status = entity.MovementStatusCompleted
		existing.QuantityDiff = &diff
		existing.UpdatedAt = now
		if err := movementRepo.Complete(existing); err != nil {
			return nil, nil, err
		}
		result = existing
		stale = append(stale, cache.MovementKey(existing.ID))

	default:
		return nil, nil, fmt.Errorf("%w: movement_id %s ya cerrado (%s)",
			domain.ErrInvalidMovementState, evt.MovementID, existing.Status)
	}

	if _, err := stock.Adjust(stockRepo, warehouse.ID, evt.ProductID, evt.Quantity); err != nil {
		return nil, nil, err
	}
	return result, stale, nil
}

func ptrInt64(v int64) *int64 { return &v }
