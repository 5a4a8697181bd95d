package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, movement_id, source_warehouse_id, destination_warehouse_id,
		product_id, quantity, departure_time, arrival_time, status, quantity_diff,
		created_at, updated_at`

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
// La tabla lleva un índice único parcial sobre (movement_id) WHERE status = 'IN_TRANSIT':
// dos departures concurrentes para el mismo movement_id no pueden confirmar ambos.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento nuevo. Si otra transacción ya abrió un movimiento
// con el mismo movement_id (índice parcial), devuelve ErrInvalidMovementState.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.MovementID, movement.SourceWarehouseID, movement.DestinationWarehouseID,
		movement.ProductID, movement.Quantity, movement.DepartureTime, movement.ArrivalTime,
		movement.Status, movement.QuantityDiff, movement.CreatedAt, movement.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: movement_id %s ya tiene un movimiento abierto",
				domain.ErrInvalidMovementState, movement.MovementID)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// Complete persiste el cierre de un movimiento (destino, llegada, estado y diff).
// El predicado de estado es el cerrojo contra arrivals concurrentes: dos entregas
// del mismo arrival leen ambas la fila IN_TRANSIT, pero solo el UPDATE del ganador
// la encuentra en tránsito; el perdedor afecta 0 filas y su transacción se revierte
// sin volver a sumar stock.
func (r *MovementRepo) Complete(movement *entity.Movement) error {
	query := `
		UPDATE movements
		SET destination_warehouse_id = $2, arrival_time = $3, status = $4,
		    quantity_diff = $5, updated_at = $6
		WHERE id = $1 AND status = 'IN_TRANSIT'`
	cmd, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.DestinationWarehouseID, movement.ArrivalTime,
		movement.Status, movement.QuantityDiff, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("complete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: el movimiento %s ya no está en tránsito",
			domain.ErrInvalidMovementState, movement.ID)
	}
	return nil
}

// GetByID obtiene un movimiento por su ID interno; nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.queryOne(query, id)
}

// FindByMovementID busca la fila más reciente para la clave de correlación externa.
func (r *MovementRepo) FindByMovementID(movementID string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE movement_id = $1
		ORDER BY created_at DESC LIMIT 1`
	return r.queryOne(query, movementID)
}

// List lista movimientos; warehouse_id coincide contra origen o destino.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND (source_warehouse_id = $%d OR destination_warehouse_id = $%d)", pos, pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MovementRepo) queryOne(query string, arg any) (*entity.Movement, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.MovementID, &m.SourceWarehouseID, &m.DestinationWarehouseID,
		&m.ProductID, &m.Quantity, &m.DepartureTime, &m.ArrivalTime,
		&m.Status, &m.QuantityDiff, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
