package repository

import "github.com/tu-usuario/warehouse-sync/internal/domain/entity"

// StockItemRepository define el puerto para consultar/actualizar existencias por
// almacén+producto. Las mutaciones se usan siempre dentro de una transacción.
type StockItemRepository interface {
	// Get devuelve la fila o nil si el par (almacén, producto) no existe.
	Get(warehouseID, productID string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); nil si no existe.
	GetForUpdate(warehouseID, productID string) (*entity.StockItem, error)
	// EnsureRow materializa la fila con cantidad 0 si aún no existe (insert-ignore).
	EnsureRow(warehouseID, productID string) error
	// UpdateQuantity persiste la nueva cantidad de una fila ya bloqueada.
	UpdateQuantity(item *entity.StockItem) error
	ListByWarehouse(warehouseID string) ([]*entity.StockItem, error)
}
