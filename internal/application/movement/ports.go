package movement

import (
	"context"

	"github.com/tu-usuario/warehouse-sync/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad de trabajo de un evento: alta de
// entidades, ajuste de stock y transición del movimiento o se confirman juntos
// o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		stockRepo repository.StockItemRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
