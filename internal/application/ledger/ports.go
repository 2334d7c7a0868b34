package ledger

import (
	"context"

	"github.com/HARD953/supply-chain/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad ledger+registro:
// o el movimiento y el nuevo estado del producto quedan visibles juntos,
// o ninguno queda.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
