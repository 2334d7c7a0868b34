package postgres

import (
	"context"
	"fmt"

	"github.com/HARD953/supply-chain/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura sobre el catálogo.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de stats. Pasar pool o tx (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// ProductsPerSupplier cuenta productos por proveedor. Incluye proveedores sin
// productos (LEFT JOIN) para que el dashboard los muestre en cero.
func (r *StatsRepo) ProductsPerSupplier(ctx context.Context) ([]repository.SupplierProductCount, error) {
	query := `
		SELECT s.id, s.name, COUNT(p.id) AS products
		FROM suppliers s
		LEFT JOIN products p ON p.supplier_id = s.id
		GROUP BY s.id, s.name
		ORDER BY products DESC, s.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("products per supplier: %w", err)
	}
	defer rows.Close()
	var out []repository.SupplierProductCount
	for rows.Next() {
		var c repository.SupplierProductCount
		if err := rows.Scan(&c.SupplierID, &c.SupplierName, &c.Products); err != nil {
			return nil, fmt.Errorf("scan supplier count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ProductsPerStatus cuenta productos por status.
func (r *StatsRepo) ProductsPerStatus(ctx context.Context) ([]repository.StatusCount, error) {
	query := `
		SELECT status, COUNT(*) AS products
		FROM products
		GROUP BY status
		ORDER BY status`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("products per status: %w", err)
	}
	defer rows.Close()
	var out []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Products); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
