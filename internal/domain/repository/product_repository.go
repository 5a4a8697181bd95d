package repository

import "github.com/tu-usuario/warehouse-sync/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	CreateIfAbsent(product *entity.Product) error
}
