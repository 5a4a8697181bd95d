package stock

import (
	"context"
	"strconv"
	"time"

	"github.com/tu-usuario/warehouse-sync/internal/application/cache"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

// QueryService sirve las lecturas de existencias con caché read-through del
// nivel por (almacén, producto).
type QueryService struct {
	stocks repository.StockItemRepository
	cache  cache.Store
	ttl    time.Duration
}

// NewQueryService construye el servicio de consulta de existencias.
func NewQueryService(stocks repository.StockItemRepository, cacheStore cache.Store, ttl time.Duration) *QueryService {
	return &QueryService{stocks: stocks, cache: cacheStore, ttl: ttl}
}

// GetStockLevel devuelve la cantidad actual; 0 si el par nunca fue referenciado.
func (s *QueryService) GetStockLevel(ctx context.Context, warehouseID, productID string) (int64, error) {
	key := cache.StockKey(warehouseID, productID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		if qty, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return qty, nil
		}
	}

	item, err := s.stocks.Get(warehouseID, productID)
	if err != nil {
		return 0, err
	}
	var qty int64
	if item != nil {
		qty = item.Quantity
	}

	s.cache.Set(ctx, key, strconv.FormatInt(qty, 10), s.ttl)
	return qty, nil
}

// GetWarehouseInventory devuelve el inventario completo de un almacén.
func (s *QueryService) GetWarehouseInventory(ctx context.Context, warehouseID string) ([]*entity.StockItem, error) {
	return s.stocks.ListByWarehouse(warehouseID)
}
