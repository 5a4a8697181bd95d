// Package registry resuelve (o da de alta) los almacenes y productos que
// referencian los eventos entrantes. Las funciones operan sobre repositorios ya
// atados a la transacción del evento en curso.
package registry

import (
	"fmt"
	"time"

	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

// ResolveWarehouse devuelve el almacén con ese ID, creándolo si no existe.
// Idempotente bajo concurrencia: el insert es insert-ignore y, si otra
// transacción ganó la carrera, se relee y se usa la fila del ganador.
func ResolveWarehouse(warehouses repository.WarehouseRepository, id, code string) (*entity.Warehouse, error) {
	existing, err := warehouses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if code == "" {
		code = FallbackWarehouseCode(id)
	}
	w := &entity.Warehouse{ID: id, Code: code, CreatedAt: time.Now().UTC()}
	if err := warehouses.CreateIfAbsent(w); err != nil {
		return nil, err
	}

	// Releer: si perdimos la carrera nos quedamos con la fila del ganador.
	created, err := warehouses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("warehouse %s no visible tras insert", id)
	}
	return created, nil
}

// ResolveProduct devuelve el producto con ese ID, creándolo si no existe.
func ResolveProduct(products repository.ProductRepository, id string) (*entity.Product, error) {
	existing, err := products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	p := &entity.Product{ID: id, CreatedAt: time.Now().UTC()}
	if err := products.CreateIfAbsent(p); err != nil {
		return nil, err
	}

	created, err := products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("product %s no visible tras insert", id)
	}
	return created, nil
}

// FallbackWarehouseCode deriva un código provisional a partir del UUID cuando el
// evento no trae ninguno. No es un código de negocio validado: se mantiene por
// compatibilidad con los productores que omiten el campo source.
func FallbackWarehouseCode(warehouseID string) string {
	if len(warehouseID) < 4 {
		return "WH-" + warehouseID
	}
	return "WH-" + warehouseID[:4]
}
