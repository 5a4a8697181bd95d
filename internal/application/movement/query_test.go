package movement_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/warehouse-sync/internal/application/cache"
	"github.com/tu-usuario/warehouse-sync/internal/application/movement"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

// memCache caché en memoria con registro de escrituras, para las pruebas de
// read-through.
type memCache struct {
	data map[string]string
	sets []string
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.data[key] = value
	c.sets = append(c.sets, key)
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.data, k)
	}
}

// listSpy registra el filtro con el que se llamó List.
type listSpy struct {
	memMovementRepo
	lastFilter repository.MovementFilter
}

func (s *listSpy) List(f repository.MovementFilter) ([]*entity.Movement, error) {
	s.lastFilter = f
	return s.memMovementRepo.List(f)
}

func completedMovement() *entity.Movement {
	salida := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	llegada := salida.Add(2 * time.Hour)
	diff := int64(0)
	return &entity.Movement{
		ID:                     "m-interno-1",
		MovementID:             movID,
		SourceWarehouseID:      ptr(whOrigen),
		DestinationWarehouseID: ptr(whDestino),
		ProductID:              prodID,
		Quantity:               4,
		DepartureTime:          &salida,
		ArrivalTime:            &llegada,
		Status:                 entity.MovementStatusCompleted,
		QuantityDiff:           &diff,
	}
}

func ptr(s string) *string { return &s }

func TestGetMovement_NoExiste(t *testing.T) {
	svc := movement.NewQueryService(memMovementRepo{newMemStore()}, newMemCache(), time.Minute)

	_, err := svc.GetMovement(context.Background(), "no-existe")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetMovement_DesdeBDYPueblaCache(t *testing.T) {
	store := newMemStore()
	store.movements = append(store.movements, completedMovement())
	c := newMemCache()
	svc := movement.NewQueryService(memMovementRepo{store}, c, time.Minute)

	m, err := svc.GetMovement(context.Background(), "m-interno-1")
	require.NoError(t, err)
	assert.Equal(t, movID, m.MovementID)
	assert.Contains(t, c.sets, cache.MovementKey("m-interno-1"))
}

func TestGetMovement_DesdeCacheSinTocarBD(t *testing.T) {
	// El store está vacío: si la respuesta llega, salió del caché.
	c := newMemCache()
	raw, err := json.Marshal(completedMovement())
	require.NoError(t, err)
	c.data[cache.MovementKey("m-interno-1")] = string(raw)

	svc := movement.NewQueryService(memMovementRepo{newMemStore()}, c, time.Minute)
	m, err := svc.GetMovement(context.Background(), "m-interno-1")
	require.NoError(t, err)
	assert.Equal(t, movID, m.MovementID)
	assert.Equal(t, entity.MovementStatusCompleted, m.Status)
}

func TestGetMovement_CacheCorruptaSeIgnora(t *testing.T) {
	store := newMemStore()
	store.movements = append(store.movements, completedMovement())
	c := newMemCache()
	c.data[cache.MovementKey("m-interno-1")] = "{esto no es json"

	svc := movement.NewQueryService(memMovementRepo{store}, c, time.Minute)
	m, err := svc.GetMovement(context.Background(), "m-interno-1")
	require.NoError(t, err)
	assert.Equal(t, movID, m.MovementID)
}

func TestGetByMovementID_DevuelveLaFilaMasReciente(t *testing.T) {
	store := newMemStore()
	store.movements = append(store.movements, completedMovement())
	svc := movement.NewQueryService(memMovementRepo{store}, newMemCache(), time.Minute)

	m, err := svc.GetByMovementID(context.Background(), movID)
	require.NoError(t, err)
	assert.Equal(t, "m-interno-1", m.ID)
}

func TestGetByMovementID_NuncaProcesado(t *testing.T) {
	svc := movement.NewQueryService(memMovementRepo{newMemStore()}, newMemCache(), time.Minute)

	_, err := svc.GetByMovementID(context.Background(), movID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_AplicaLimitePorDefecto(t *testing.T) {
	spy := &listSpy{memMovementRepo: memMovementRepo{newMemStore()}}
	svc := movement.NewQueryService(spy, newMemCache(), time.Minute)

	_, err := svc.ListMovements(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 100, spy.lastFilter.Limit)
	assert.Equal(t, 0, spy.lastFilter.Offset)
}

func TestGetDuration_Completado(t *testing.T) {
	store := newMemStore()
	store.movements = append(store.movements, completedMovement())
	svc := movement.NewQueryService(memMovementRepo{store}, newMemCache(), time.Minute)

	m, segundos, err := svc.GetDuration(context.Background(), "m-interno-1")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusCompleted, m.Status)
	assert.Equal(t, 7200.0, segundos)
}

func TestGetDuration_EnTransito_Rechazado(t *testing.T) {
	store := newMemStore()
	salida := time.Now().UTC()
	store.movements = append(store.movements, &entity.Movement{
		ID:            "m-interno-2",
		MovementID:    movID,
		ProductID:     prodID,
		DepartureTime: &salida,
		Status:        entity.MovementStatusInTransit,
	})
	svc := movement.NewQueryService(memMovementRepo{store}, newMemCache(), time.Minute)

	_, _, err := svc.GetDuration(context.Background(), "m-interno-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementState)
}

func TestGetDuration_EntradaDirecta_CeroSegundos(t *testing.T) {
	store := newMemStore()
	llegada := time.Now().UTC()
	diff := int64(0)
	store.movements = append(store.movements, &entity.Movement{
		ID:                     "m-interno-3",
		MovementID:             movID,
		DestinationWarehouseID: ptr(whDestino),
		ProductID:              prodID,
		ArrivalTime:            &llegada,
		Status:                 entity.MovementStatusCompleted,
		QuantityDiff:           &diff,
	})
	svc := movement.NewQueryService(memMovementRepo{store}, newMemCache(), time.Minute)

	m, segundos, err := svc.GetDuration(context.Background(), "m-interno-3")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 0.0, segundos)
}
