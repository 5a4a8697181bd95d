package entity

import "time"

// StockItem representa la existencia actual de un producto en un almacén.
// Clave única (warehouse_id, product_id); invariante quantity >= 0.
type StockItem struct {
	ID          string
	WarehouseID string
	ProductID   string
	Quantity    int64
	UpdatedAt   time.Time
}
