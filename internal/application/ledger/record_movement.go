package ledger

import (
	"context"

	"github.com/HARD953/supply-chain/internal/application/dto"
	"github.com/HARD953/supply-chain/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso
// RecordMovement(ctx, MovementInput). Usar desde handlers que ya tengan el
// userID del token.
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.StockMovement, error) {
	input := MovementInput{
		MovementID: in.MovementID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Type:       in.Type,
		Reason:     in.Reason,
		ActorID:    userID,
	}
	return uc.RecordMovement(ctx, input)
}
