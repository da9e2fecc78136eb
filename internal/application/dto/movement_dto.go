package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// Al menos uno de from_location / to_location es obligatorio.
type CreateMovementRequest struct {
	ProductID    string `json:"product_id"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	Qty          int64  `json:"qty"`
	Notes        string `json:"notes"`
}

// UpdateMovementRequest body para PUT /api/movements/:id.
// Campo nil = se conserva; from_location/to_location "" = se quita la ubicación.
type UpdateMovementRequest struct {
	ProductID    *string `json:"product_id"`
	FromLocation *string `json:"from_location"`
	ToLocation   *string `json:"to_location"`
	Qty          *int64  `json:"qty"`
	Notes        *string `json:"notes"`
}

// MovementResponse salida de un movimiento, con su tipo derivado y nombres resueltos.
type MovementResponse struct {
	MovementID       string    `json:"movement_id"`
	Type             string    `json:"type"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	FromLocation     string    `json:"from_location,omitempty"`
	FromLocationName string    `json:"from_location_name,omitempty"`
	ToLocation       string    `json:"to_location,omitempty"`
	ToLocationName   string    `json:"to_location_name,omitempty"`
	Qty              int64     `json:"qty"`
	Notes            string    `json:"notes"`
	Timestamp        time.Time `json:"timestamp"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
