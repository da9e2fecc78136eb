package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación. LocationID lo define el usuario.
type CreateLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,max=50"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Address    string `json:"address"`
	Manager    string `json:"manager"`
}

// UpdateLocationRequest entrada para actualizar una ubicación (location_id es inmutable).
type UpdateLocationRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Address *string `json:"address"`
	Manager *string `json:"manager"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	LocationID string    `json:"location_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Manager    string    `json:"manager"`
	CreatedAt  time.Time `json:"created_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LocationDetailResponse ubicación con movimientos de salida y de entrada, y stock por producto.
type LocationDetailResponse struct {
	LocationResponse
	MovementsFrom []MovementResponse `json:"movements_from"`
	MovementsTo   []MovementResponse `json:"movements_to"`
	Stock         []StockLine        `json:"stock"`
}
