package repository

import (
	"context"

	"github.com/HARD953/supply-chain/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Delete deja en NULL la categoría de los productos que la referencian
// (ON DELETE SET NULL en el esquema).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
