package stock

import "github.com/HARD953/supply-chain/internal/domain/entity"

// Apply implementa la derivación de stock como función pura (servicio de dominio):
// dado el estado actual (cantidad, status) y un delta con signo, devuelve la nueva
// cantidad y el nuevo status.
//
//	NuevaCantidad = max(0, CantidadActual + Delta)
//
// Reglas de status:
//   - cantidad 0            -> out_of_stock
//   - sale de 0 estando out -> active
//   - en cualquier otro caso el status no se toca; un "inactive" puesto a mano
//     por un operador sobrevive a las entradas y solo cede ante la regla de cero.
func Apply(quantity int64, status string, delta int64) (int64, string) {
	newQty := quantity + delta
	if newQty < 0 {
		newQty = 0 // clamp: una salida mayor al stock deja la cantidad en cero
	}
	switch {
	case newQty == 0:
		status = entity.StatusOutOfStock
	case status == entity.StatusOutOfStock:
		status = entity.StatusActive
	}
	return newQty, status
}
