package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/HARD953/supply-chain/internal/application/dto"
	"github.com/HARD953/supply-chain/internal/application/ledger"
	"github.com/HARD953/supply-chain/internal/application/query"
	"github.com/HARD953/supply-chain/internal/domain"
)

// StockHandler maneja las peticiones HTTP de movimientos y consultas de stock (protegido).
type StockHandler struct {
	record  *ledger.RecordMovementUseCase
	queries *query.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(record *ledger.RecordMovementUseCase, queries *query.StockQueryUseCase) *StockHandler {
	return &StockHandler{record: record, queries: queries}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, quantity (> 0), type (in|out), reason; movement_id opcional para reintentos idempotentes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.record.RecordMovementFromRequest(c.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrLockTimeout):
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "producto ocupado, reintente"})
		case errors.Is(err, domain.ErrStorage):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "fallo de almacenamiento, el movimiento no se aplicó"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	createdBy := ""
	if mov.CreatedBy != nil {
		createdBy = *mov.CreatedBy
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:        mov.ID,
		ProductID: mov.ProductID,
		Quantity:  mov.Quantity,
		Type:      mov.Type,
		Reason:    mov.Reason,
		CreatedBy: createdBy,
		CreatedAt: mov.CreatedAt,
	})
}

// MovementHistory godoc
// @Summary      Historial de movimientos de un producto (más reciente primero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Product ID"
// @Param        limit   query  int     false  "Tamaño de página (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) MovementHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	hist, err := h.queries.MovementHistory(c.Context(), c.Params("id"), page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(hist)
}

// LowStock godoc
// @Summary      Productos con stock bajo el umbral (agotados primero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	list, err := h.queries.ListLowStock(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// SupplierStats godoc
// @Summary      Conteo de productos por proveedor
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierProductCountDTO
// @Router       /api/stats/suppliers [get]
func (h *StockHandler) SupplierStats(c *fiber.Ctx) error {
	rows, err := h.queries.ProductsPerSupplier(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(rows), "suppliers": rows})
}

// StatusStats godoc
// @Summary      Conteo de productos por status
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StatusCountDTO
// @Router       /api/stats/status [get]
func (h *StockHandler) StatusStats(c *fiber.Ctx) error {
	rows, err := h.queries.ProductsPerStatus(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(rows), "statuses": rows})
}
