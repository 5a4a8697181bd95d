package dto

// ProductStockResponse nivel de stock de un producto en un almacén.
type ProductStockResponse struct {
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
}

// StockItemResponse renglón del inventario de un almacén.
type StockItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// WarehouseInventoryResponse inventario completo de un almacén.
type WarehouseInventoryResponse struct {
	WarehouseID string              `json:"warehouse_id"`
	Items       []StockItemResponse `json:"items"`
}
