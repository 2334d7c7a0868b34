package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento de stock.
// MovementID es opcional: un id generado por el cliente permite reintentar
// ante errores de almacenamiento sin aplicar el movimiento dos veces.
type RegisterMovementRequest struct {
	MovementID string `json:"movement_id"`
	ProductID  string `json:"product_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	Type       string `json:"type" validate:"required,oneof=in out"`
	Reason     string `json:"reason" validate:"required"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by"` // "unknown" si el usuario ya no existe
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StatusCountDTO conteo de productos por status (stats).
type StatusCountDTO struct {
	Status   string `json:"status"`
	Products int64  `json:"products"`
}
