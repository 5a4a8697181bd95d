package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-sync/internal/application/dto"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
)

// StockQueries es lo que el handler necesita del servicio de existencias.
type StockQueries interface {
	GetStockLevel(ctx context.Context, warehouseID, productID string) (int64, error)
	GetWarehouseInventory(ctx context.Context, warehouseID string) ([]*entity.StockItem, error)
}

// StockHandler sirve las lecturas de existencias.
type StockHandler struct {
	queries StockQueries
}

// NewStockHandler construye el handler.
func NewStockHandler(queries StockQueries) *StockHandler {
	return &StockHandler{queries: queries}
}

// GetProductStock devuelve el nivel de stock de un producto en un almacén
// (0 si el par nunca fue referenciado).
func (h *StockHandler) GetProductStock(c *fiber.Ctx) error {
	warehouseID, ok := parseUUIDParam(c, "warehouse_id")
	if !ok {
		return nil
	}
	productID, ok := parseUUIDParam(c, "product_id")
	if !ok {
		return nil
	}

	qty, err := h.queries.GetStockLevel(c.Context(), warehouseID, productID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ProductStockResponse{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    qty,
	})
}

// GetInventory devuelve el inventario completo de un almacén.
func (h *StockHandler) GetInventory(c *fiber.Ctx) error {
	warehouseID, ok := parseUUIDParam(c, "warehouse_id")
	if !ok {
		return nil
	}

	items, err := h.queries.GetWarehouseInventory(c.Context(), warehouseID)
	if err != nil {
		return errorResponse(c, err)
	}

	resp := dto.WarehouseInventoryResponse{
		WarehouseID: warehouseID,
		Items:       make([]dto.StockItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.StockItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return c.JSON(resp)
}
