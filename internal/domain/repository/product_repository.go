package repository

import (
	"context"

	"github.com/HARD953/supply-chain/internal/domain/entity"
)

// ProductFilter filtros opcionales para listar productos. Campos vacíos no filtran.
type ProductFilter struct {
	Status     string
	SupplierID string
	CategoryID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) y solo tiene
// sentido dentro de una transacción: es el punto de serialización por producto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantity int64, status string) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, threshold int64, limit, offset int) ([]*entity.Product, error)
	CountBySupplier(ctx context.Context, supplierID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
