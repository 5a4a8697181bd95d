// Package stock implementa el libro de existencias: contadores no negativos de
// cantidad por (almacén, producto).
package stock

import (
	"fmt"
	"time"

	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

// Adjust aplica un delta al stock de un producto en un almacén y devuelve la
// cantidad resultante. Bloquea la fila (SELECT FOR UPDATE) para que el
// invariante quantity >= 0 se sostenga bajo ejecución concurrente; un
// read-modify-write sin bloqueo no es suficiente.
//
// En la primera referencia al par (almacén, producto) la fila se materializa en
// 0 antes de aplicar el delta. Errores:
//   - ErrNegativeInitialStock si la fila no existe y el delta es negativo.
//   - ErrInsufficientStock si current + delta < 0.
//
// Debe llamarse dentro de la transacción del evento: el rechazo aborta la
// unidad de trabajo completa.
func Adjust(stocks repository.StockItemRepository, warehouseID, productID string, delta int64) (int64, error) {
	item, err := stocks.GetForUpdate(warehouseID, productID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		if delta < 0 {
			return 0, fmt.Errorf("%w: almacén %s, producto %s", domain.ErrNegativeInitialStock, warehouseID, productID)
		}
		if err := stocks.EnsureRow(warehouseID, productID); err != nil {
			return 0, err
		}
		// Volver a leer con bloqueo: si otra tx materializó la fila primero,
		// partimos de su cantidad, no de 0.
		item, err = stocks.GetForUpdate(warehouseID, productID)
		if err != nil {
			return 0, err
		}
		if item == nil {
			return 0, fmt.Errorf("stock %s/%s no visible tras insert", warehouseID, productID)
		}
	}

	next := item.Quantity + delta
	if next < 0 {
		return 0, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, item.Quantity, -delta)
	}
	item.Quantity = next
	item.UpdatedAt = time.Now().UTC()
	if err := stocks.UpdateQuantity(item); err != nil {
		return 0, err
	}
	return next, nil
}
