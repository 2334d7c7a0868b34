package repository

import "context"

// SupplierProductCount conteo de productos por proveedor.
type SupplierProductCount struct {
	SupplierID   string
	SupplierName string
	Products     int64
}

// StatusCount conteo de productos por status.
type StatusCount struct {
	Status   string
	Products int64
}

// StatsRepository consultas agregadas de solo lectura sobre el catálogo.
type StatsRepository interface {
	ProductsPerSupplier(ctx context.Context) ([]SupplierProductCount, error)
	ProductsPerStatus(ctx context.Context) ([]StatusCount, error)
}
