package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HARD953/supply-chain/internal/domain"
	"github.com/HARD953/supply-chain/internal/domain/entity"
	"github.com/HARD953/supply-chain/internal/domain/repository"
	"github.com/HARD953/supply-chain/internal/domain/stock"
)

// DefaultLockTimeout espera máxima por la sección exclusiva de un producto
// antes de devolver ErrLockTimeout.
const DefaultLockTimeout = 5 * time.Second

// RecordMovementUseCase es el único punto de entrada para mutar stock: aplica
// un movimiento al ledger y recalcula el estado del producto como una sola
// unidad atómica, serializando los movimientos concurrentes del mismo producto
// con bloqueo de fila (SELECT FOR UPDATE) dentro de la transacción.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	lockTimeout time.Duration
}

// NewRecordMovementUseCase construye el caso de uso. lockTimeout <= 0 usa
// DefaultLockTimeout.
func NewRecordMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository, lockTimeout time.Duration) *RecordMovementUseCase {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &RecordMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		lockTimeout: lockTimeout,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
// MovementID es opcional: si el cliente lo genera, un reintento tras un
// ErrStorage no aplica el movimiento dos veces.
type MovementInput struct {
	MovementID string
	ProductID  string
	Quantity   int64
	Type       string
	Reason     string
	ActorID    string
}

// RecordMovement valida la entrada, serializa por producto y aplica el
// movimiento: append al ledger + recálculo de cantidad/status del producto,
// ambos en la misma transacción. Devuelve el movimiento ya confirmado.
//
// Errores: ErrInvalidInput si la entrada es inválida o el producto no existe
// (sin ningún cambio de estado); ErrLockTimeout si no se obtiene el bloqueo
// del producto dentro del límite; ErrStorage si el commit atómico falla (el
// estado previo queda intacto y el caller puede reintentar).
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	// Validar antes de tocar nada
	if input.ProductID == "" || input.Quantity <= 0 || strings.TrimSpace(input.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeIn && input.Type != entity.MovementTypeOut {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s no existe: %w", input.ProductID, domain.ErrInvalidInput)
	}

	mov := &entity.StockMovement{
		ID:        input.MovementID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Type:      input.Type,
		Reason:    strings.TrimSpace(input.Reason),
		CreatedAt: time.Now(),
	}
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	if input.ActorID != "" {
		actorID := input.ActorID
		mov.CreatedBy = &actorID
	}

	// Espera acotada: cubre el bloqueo por producto y el commit. Si se cancela
	// antes del commit, la transacción hace rollback y no queda efecto parcial.
	ctx, cancel := context.WithTimeout(ctx, uc.lockTimeout)
	defer cancel()

	var committed *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Reintento idempotente: si el cliente mandó su propio id y el
		// movimiento ya está en el ledger, se devuelve tal cual.
		if input.MovementID != "" {
			existing, err := movRepo.GetByID(ctx, input.MovementID)
			if err != nil {
				return err
			}
			if existing != nil {
				committed = existing
				return nil
			}
		}

		// Sección exclusiva por producto: bloquea la fila hasta el commit.
		locked, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("producto %s no existe: %w", input.ProductID, domain.ErrInvalidInput)
		}

		newQty, newStatus := stock.Apply(locked.StockQuantity, locked.Status, mov.SignedDelta())
		if err := productRepo.UpdateStock(ctx, locked.ID, newQty, newStatus); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		committed = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}
