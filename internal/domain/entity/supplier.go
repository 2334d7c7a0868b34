package entity

import "time"

// Estados posibles de un proveedor.
const (
	SupplierStatusActive   = "active"
	SupplierStatusInactive = "inactive"
)

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID        string
	Name      string
	Email     string // único
	Phone     string
	Address   string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
