package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse salida de GET /api/stock.
type StockResponse struct {
	ProductID         string `json:"product_id"`
	LocationID        string `json:"location_id"`
	ExcludeMovementID string `json:"exclude_movement_id,omitempty"`
	Qty               int64  `json:"qty"`
}

// StockLine stock de un producto en una ubicación (vistas de detalle).
type StockLine struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name,omitempty"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name,omitempty"`
	Qty          int64  `json:"qty"`
}

// BalanceLineDTO línea del reporte de balance. Product/Location nil si el registro ya no existe.
type BalanceLineDTO struct {
	ProductID  string            `json:"product_id"`
	LocationID string            `json:"location_id"`
	Product    *ProductResponse  `json:"product"`
	Location   *LocationResponse `json:"location"`
	Qty        int64             `json:"qty"`
	Value      decimal.Decimal   `json:"value"` // qty * unit_price (0 si el producto no existe)
}

// BalanceReportDTO reporte de balance actual.
type BalanceReportDTO struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Lines       []BalanceLineDTO `json:"lines"`
	TotalQty    int64            `json:"total_qty"`
	TotalValue  decimal.Decimal  `json:"total_value"`
}
