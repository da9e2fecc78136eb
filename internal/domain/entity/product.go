package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock no se guarda: se deriva de los movimientos.
type Product struct {
	ID          string // product_id definido por el usuario, inmutable
	Name        string
	Description string
	UnitPrice   decimal.Decimal // nunca negativo
	CreatedAt   time.Time
}
