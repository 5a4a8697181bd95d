package movement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tu-usuario/warehouse-sync/internal/application/cache"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

// QueryService sirve las lecturas de movimientos con caché read-through sobre
// el ID interno. Los listados van siempre a BD (las combinaciones de filtros no
// se cachean).
type QueryService struct {
	movements repository.MovementRepository
	cache     cache.Store
	ttl       time.Duration
}

// NewQueryService construye el servicio de consulta.
func NewQueryService(movements repository.MovementRepository, cacheStore cache.Store, ttl time.Duration) *QueryService {
	return &QueryService{movements: movements, cache: cacheStore, ttl: ttl}
}

// GetMovement obtiene un movimiento por su ID interno.
// Devuelve ErrNotFound si no existe.
func (s *QueryService) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	key := cache.MovementKey(id)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var m entity.Movement
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			return &m, nil
		}
		// Entrada corrupta: se ignora y se repuebla desde BD.
	}

	m, err := s.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	if raw, err := json.Marshal(m); err == nil {
		s.cache.Set(ctx, key, string(raw), s.ttl)
	}
	return m, nil
}

// GetByMovementID obtiene el movimiento más reciente para la clave de
// correlación externa (la que comparten los eventos departure y arrival).
// Devuelve ErrNotFound si ningún evento con esa clave fue procesado.
func (s *QueryService) GetByMovementID(ctx context.Context, movementID string) (*entity.Movement, error) {
	m, err := s.movements.FindByMovementID(movementID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ListMovements lista movimientos aplicando los filtros dados.
func (s *QueryService) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.movements.List(filter)
}

// GetDuration devuelve la duración en segundos de un movimiento completado.
// ErrInvalidMovementState si el movimiento aún no se completó.
func (s *QueryService) GetDuration(ctx context.Context, id string) (*entity.Movement, float64, error) {
	m, err := s.GetMovement(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if m.Status != entity.MovementStatusCompleted {
		return nil, 0, domain.ErrInvalidMovementState
	}
	seconds, ok := m.Duration()
	if !ok {
		// Completado por entrada directa: no hay salida registrada.
		return m, 0, nil
	}
	return m, seconds, nil
}
