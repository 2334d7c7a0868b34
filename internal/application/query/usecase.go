package query

import (
	"context"

	"github.com/HARD953/supply-chain/internal/application/dto"
	"github.com/HARD953/supply-chain/internal/domain"
	"github.com/HARD953/supply-chain/internal/domain/entity"
	"github.com/HARD953/supply-chain/internal/domain/repository"
)

// UnknownActor nombre con el que el historial resuelve un created_by cuyo
// usuario ya fue eliminado. El movimiento nunca se borra; la referencia sí
// puede quedar huérfana.
const UnknownActor = "unknown"

// StockQueryUseCase proyecciones de solo lectura: producto actual, historial
// de movimientos, listados de stock bajo/agotado y agregados. Nunca muta
// estado y siempre lee estado confirmado.
type StockQueryUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	userRepo     repository.UserRepository
	statsRepo    repository.StatsRepository
	lowStockMax  int64
}

// NewStockQueryUseCase construye el caso de uso. lowStockMax es el umbral del
// listado de stock bajo (cantidad <= umbral).
func NewStockQueryUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	userRepo repository.UserRepository,
	statsRepo repository.StatsRepository,
	lowStockMax int64,
) *StockQueryUseCase {
	if lowStockMax <= 0 {
		lowStockMax = 5
	}
	return &StockQueryUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		userRepo:     userRepo,
		statsRepo:    statsRepo,
		lowStockMax:  lowStockMax,
	}
}

// GetProduct devuelve el estado actual de un producto o ErrNotFound.
func (uc *StockQueryUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListProducts lista productos filtrando opcionalmente por status, proveedor
// y categoría.
func (uc *StockQueryUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// MovementHistory devuelve el historial de un producto, más reciente primero.
// ErrNotFound si el producto no existe. El created_by se resuelve contra la
// tabla de usuarios; un actor eliminado aparece como "unknown".
func (uc *StockQueryUseCase) MovementHistory(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.movementRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *uc.toMovementResponse(ctx, m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock lista productos con cantidad <= umbral configurado, los
// agotados primero.
func (uc *StockQueryUseCase) ListLowStock(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.ListLowStock(ctx, uc.lowStockMax, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ProductsPerSupplier conteo de productos por proveedor.
func (uc *StockQueryUseCase) ProductsPerSupplier(ctx context.Context) ([]dto.SupplierProductCountDTO, error) {
	rows, err := uc.statsRepo.ProductsPerSupplier(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierProductCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SupplierProductCountDTO{
			SupplierID:   r.SupplierID,
			SupplierName: r.SupplierName,
			Products:     r.Products,
		})
	}
	return out, nil
}

// ProductsPerStatus conteo de productos por status.
func (uc *StockQueryUseCase) ProductsPerStatus(ctx context.Context) ([]dto.StatusCountDTO, error) {
	rows, err := uc.statsRepo.ProductsPerStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StatusCountDTO{Status: r.Status, Products: r.Products})
	}
	return out, nil
}

func (uc *StockQueryUseCase) toMovementResponse(ctx context.Context, m *entity.StockMovement) *dto.MovementResponse {
	createdBy := UnknownActor
	if m.CreatedBy != nil {
		if user, err := uc.userRepo.GetByID(ctx, *m.CreatedBy); err == nil && user != nil {
			createdBy = user.Name
		}
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Type:      m.Type,
		Reason:    m.Reason,
		CreatedBy: createdBy,
		CreatedAt: m.CreatedAt,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		SupplierID:    p.SupplierID,
		CategoryID:    p.CategoryID,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
