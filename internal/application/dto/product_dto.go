package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. ProductID lo define el usuario.
type CreateProductRequest struct {
	ProductID   string          `json:"product_id" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest entrada para actualizar un producto (product_id es inmutable).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductDetailResponse producto con sus movimientos y stock por ubicación.
type ProductDetailResponse struct {
	ProductResponse
	Movements []MovementResponse `json:"movements"`
	Stock     []StockLine        `json:"stock"`
}
