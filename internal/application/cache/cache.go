package cache

import (
	"context"
	"time"
)

// Store define el puerto de caché de lecturas. Todas las operaciones son
// best-effort: un fallo del backend se registra y nunca se propaga al caller.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}

// StockKey clave de caché para el nivel de stock de un producto en un almacén.
func StockKey(warehouseID, productID string) string {
	return "stock:" + warehouseID + ":" + productID
}

// MovementKey clave de caché para un movimiento por su ID interno.
func MovementKey(id string) string {
	return "movement:" + id
}
