package repository

import "github.com/tu-usuario/warehouse-sync/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	// CreateIfAbsent inserta sin fallar si otra transacción ya creó la fila
	// (insert-ignore a nivel de storage; el que pierde la carrera relee).
	CreateIfAbsent(warehouse *entity.Warehouse) error
}
