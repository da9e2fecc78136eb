// Package inventory contiene el motor de stock: el stock no se almacena, se deriva del libro de movimientos.
package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MaxQty tope de qty por movimiento y de stock en una ubicación. Coincide con la columna
// INTEGER de PostgreSQL y mantiene las sumas lejos del desborde de int64.
const MaxQty = math.MaxInt32

// Reader calcula el stock neto de un producto en una ubicación a partir del libro persistido.
// Lo implementa el repositorio de movimientos (consulta SUM en SQL).
type Reader interface {
	Stock(ctx context.Context, productID, locationID, excludeMovementID string) (int64, error)
}

// Net es la proyección pura del stock: entradas a la ubicación menos salidas de ella,
// solo para el producto dado. El movimiento excludeMovementID (si no es vacío) se omite en ambas sumas.
// Producto o ubicación desconocidos devuelven 0, igual que locationID vacío.
func Net(movements []*entity.Movement, productID, locationID, excludeMovementID string) int64 {
	if locationID == "" {
		return 0
	}
	var total int64
	for _, m := range movements {
		if m.ProductID != productID {
			continue
		}
		if excludeMovementID != "" && m.ID == excludeMovementID {
			continue
		}
		if m.ToLocation == locationID {
			total += m.Qty
		}
		if m.FromLocation == locationID {
			total -= m.Qty
		}
	}
	return total
}

// Validate verifica un movimiento antes de crearlo o editarlo.
// En edición excludeMovementID es el ID del propio movimiento, para medir el disponible
// como si la versión anterior no existiera. El origen debe tener stock suficiente
// y el destino no puede pasar de MaxQty.
func Validate(ctx context.Context, r Reader, m *entity.Movement, excludeMovementID string) error {
	if err := CheckShape(m, excludeMovementID); err != nil {
		return err
	}
	if m.FromLocation != "" {
		available, err := r.Stock(ctx, m.ProductID, m.FromLocation, excludeMovementID)
		if err != nil {
			return fmt.Errorf("compute available stock: %w", err)
		}
		if m.Qty > available {
			return &domain.InsufficientStockError{
				ProductID:  m.ProductID,
				LocationID: m.FromLocation,
				Available:  available,
				Requested:  m.Qty,
			}
		}
	}
	// Un traslado a la misma ubicación no cambia su stock.
	if m.ToLocation == "" || m.ToLocation == m.FromLocation {
		return nil
	}
	current, err := r.Stock(ctx, m.ProductID, m.ToLocation, excludeMovementID)
	if err != nil {
		return fmt.Errorf("compute destination stock: %w", err)
	}
	if current+m.Qty > MaxQty {
		return fmt.Errorf("%w: el stock de %s en %s superaría %d (actual %d, qty %d)",
			domain.ErrInvalidInput, m.ProductID, m.ToLocation, MaxQty, current, m.Qty)
	}
	return nil
}

// CheckShape valida lo que no depende del libro: 0 < qty <= MaxQty y al menos una ubicación.
func CheckShape(m *entity.Movement, movementID string) error {
	if m.Qty <= 0 {
		return fmt.Errorf("%w: qty debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if m.Qty > MaxQty {
		return fmt.Errorf("%w: qty no puede superar %d", domain.ErrInvalidInput, MaxQty)
	}
	if m.FromLocation == "" && m.ToLocation == "" {
		return &domain.MissingLocationError{MovementID: movementID}
	}
	return nil
}
