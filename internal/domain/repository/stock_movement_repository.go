package repository

import (
	"context"

	"github.com/HARD953/supply-chain/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger de
// movimientos (DIP). El ledger es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct devuelve el historial de un producto, más reciente primero,
	// con paginación estable (desempata por id).
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
