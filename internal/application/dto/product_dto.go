package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial es
// siempre 0: las existencias entran únicamente vía movimientos.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	SupplierID  string          `json:"supplier_id" validate:"required"`
	CategoryID  *string         `json:"category_id"`
}

// UpdateProductRequest entrada para actualizar un producto (sin StockQuantity:
// se maneja vía movimientos). Status solo admite el toggle administrativo.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	SupplierID  *string          `json:"supplier_id"`
	CategoryID  *string          `json:"category_id"`
	Status      *string          `json:"status"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
	SupplierID    string          `json:"supplier_id"`
	CategoryID    *string         `json:"category_id"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
