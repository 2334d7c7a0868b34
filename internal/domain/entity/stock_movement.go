package entity

import "time"

// Tipos de movimiento de stock. La dirección la da el tipo: el ledger siempre
// guarda magnitudes positivas.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement es un registro inmutable del ledger de stock. No existe path
// de update ni delete: una corrección se hace con un movimiento compensatorio.
type StockMovement struct {
	ID        string
	ProductID string
	Quantity  int64  // magnitud, siempre > 0
	Type      string // in, out
	Reason    string // obligatorio, para auditoría
	CreatedBy *string // UserID opaco; puede quedar huérfano si el usuario se elimina
	CreatedAt time.Time
}

// SignedDelta devuelve la cantidad con signo según el tipo de movimiento.
func (m *StockMovement) SignedDelta() int64 {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}
