package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HARD953/supply-chain/internal/application/dto"
	"github.com/HARD953/supply-chain/internal/application/query"
	"github.com/HARD953/supply-chain/internal/domain"
	"github.com/HARD953/supply-chain/internal/domain/entity"
	"github.com/HARD953/supply-chain/internal/domain/repository"
)

type stubProductRepo struct {
	products map[string]*entity.Product
}

func (r *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *stubProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}
func (r *stubProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *stubProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *stubProductRepo) UpdateStock(context.Context, string, int64, string) error {
	return nil
}
func (r *stubProductRepo) List(context.Context, repository.ProductFilter, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) ListLowStock(context.Context, int64, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) CountBySupplier(context.Context, string) (int64, error) { return 0, nil }
func (r *stubProductRepo) Delete(context.Context, string) error                   { return nil }

type stubMovementRepo struct {
	byProduct map[string][]*entity.StockMovement
}

func (r *stubMovementRepo) Create(context.Context, *entity.StockMovement) error { return nil }
func (r *stubMovementRepo) GetByID(context.Context, string) (*entity.StockMovement, error) {
	return nil, nil
}
func (r *stubMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.byProduct[productID], nil
}

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *stubUserRepo) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }

type stubStatsRepo struct{}

func (stubStatsRepo) ProductsPerSupplier(context.Context) ([]repository.SupplierProductCount, error) {
	return []repository.SupplierProductCount{{SupplierID: "s1", SupplierName: "Proveedor Uno", Products: 3}}, nil
}
func (stubStatsRepo) ProductsPerStatus(context.Context) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Status: entity.StatusActive, Products: 3}}, nil
}

func strPtr(s string) *string { return &s }

func buildQueryUseCase() (*query.StockQueryUseCase, *stubProductRepo) {
	products := &stubProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Arroz 1kg", StockQuantity: 8, SupplierID: "s1", Status: entity.StatusActive},
	}}
	movements := &stubMovementRepo{byProduct: map[string][]*entity.StockMovement{
		"p1": {
			{ID: "m2", ProductID: "p1", Quantity: 2, Type: entity.MovementTypeOut, Reason: "venta", CreatedBy: strPtr("u-borrado"), CreatedAt: time.Now()},
			{ID: "m1", ProductID: "p1", Quantity: 10, Type: entity.MovementTypeIn, Reason: "compra", CreatedBy: strPtr("u1"), CreatedAt: time.Now().Add(-time.Hour)},
		},
	}}
	users := &stubUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Name: "María"},
	}}
	return query.NewStockQueryUseCase(products, movements, users, stubStatsRepo{}, 5), products
}

func TestGetProduct_NoExiste(t *testing.T) {
	uc, _ := buildQueryUseCase()
	_, err := uc.GetProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos lecturas sin movimientos intermedios devuelven exactamente lo mismo.
func TestGetProduct_LecturaIdempotente(t *testing.T) {
	uc, _ := buildQueryUseCase()
	a, err := uc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	b, err := uc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMovementHistory_ResuelveActores(t *testing.T) {
	uc, _ := buildQueryUseCase()
	hist, err := uc.MovementHistory(context.Background(), "p1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 2)

	// el repo ya devuelve más reciente primero; el usecase no reordena
	assert.Equal(t, "m2", hist.Items[0].ID)
	assert.Equal(t, query.UnknownActor, hist.Items[0].CreatedBy, "actor eliminado se resuelve a unknown")
	assert.Equal(t, "María", hist.Items[1].CreatedBy)
}

func TestMovementHistory_ProductoNoExiste(t *testing.T) {
	uc, _ := buildQueryUseCase()
	_, err := uc.MovementHistory(context.Background(), "nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductsPerSupplier(t *testing.T) {
	uc, _ := buildQueryUseCase()
	rows, err := uc.ProductsPerSupplier(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Proveedor Uno", rows[0].SupplierName)
	assert.Equal(t, int64(3), rows[0].Products)
}
