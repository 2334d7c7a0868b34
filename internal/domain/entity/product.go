package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de un producto.
// StatusInactive es un override administrativo: el motor de stock nunca lo
// asigna ni lo quita automáticamente.
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusOutOfStock = "out_of_stock"
)

// Product representa un producto del catálogo con su estado derivado de stock.
// StockQuantity y Status (active <-> out_of_stock) se mutan exclusivamente vía
// movimientos de stock; el CRUD administrativo solo toca los demás campos.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta, nunca negativo
	StockQuantity int64           // derivado de la suma de movimientos, nunca negativo
	ImageURL      string
	SupplierID    string  // obligatorio
	CategoryID    *string // opcional; NULL si la categoría fue eliminada
	Status        string  // active, inactive, out_of_stock
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
