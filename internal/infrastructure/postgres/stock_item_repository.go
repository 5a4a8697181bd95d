package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
// La tabla lleva UNIQUE (warehouse_id, product_id) y CHECK (quantity >= 0).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Get obtiene la fila de stock; nil si el par (almacén, producto) no existe.
func (r *StockItemRepo) Get(warehouseID, productID string) (*entity.StockItem, error) {
	query := `
		SELECT id, warehouse_id, product_id, quantity, updated_at
		FROM stock_items WHERE warehouse_id = $1 AND product_id = $2`
	var s entity.StockItem
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&s.ID, &s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE); nil si no existe.
func (r *StockItemRepo) GetForUpdate(warehouseID, productID string) (*entity.StockItem, error) {
	query := `
		SELECT id, warehouse_id, product_id, quantity, updated_at
		FROM stock_items WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.StockItem
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&s.ID, &s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return &s, nil
}

// EnsureRow materializa la fila en 0 si no existe. Insert-ignore: bajo carrera
// la primera escritura gana y el caller vuelve a leer con bloqueo.
func (r *StockItemRepo) EnsureRow(warehouseID, productID string) error {
	query := `
		INSERT INTO stock_items (id, warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (warehouse_id, product_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), warehouseID, productID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("ensure stock item: %w", err)
	}
	return nil
}

// UpdateQuantity persiste la cantidad de una fila ya bloqueada por la tx.
func (r *StockItemRepo) UpdateQuantity(item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET quantity = $3, updated_at = now()
		WHERE warehouse_id = $1 AND product_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, item.WarehouseID, item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock quantity: fila %s/%s no existe", item.WarehouseID, item.ProductID)
	}
	return nil
}

// ListByWarehouse devuelve el inventario completo de un almacén.
func (r *StockItemRepo) ListByWarehouse(warehouseID string) ([]*entity.StockItem, error) {
	query := `
		SELECT id, warehouse_id, product_id, quantity, updated_at
		FROM stock_items WHERE warehouse_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var s entity.StockItem
		if err := rows.Scan(&s.ID, &s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
