package entity

import "time"

// Location representa una bodega, tienda o zona donde se almacena inventario.
type Location struct {
	ID        string // location_id definido por el usuario, inmutable
	Name      string
	Address   string
	Manager   string
	CreatedAt time.Time
}
