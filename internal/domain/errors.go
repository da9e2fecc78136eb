package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInUse             = errors.New("recurso referenciado por movimientos")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrMissingLocation   = errors.New("se requiere from_location o to_location")
)

// InsufficientStockError indica que la ubicación origen no tiene stock suficiente para el movimiento.
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Available  int64
	Requested  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s para %s: disponible %d, solicitado %d",
		e.LocationID, e.ProductID, e.Available, e.Requested)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// MissingLocationError: movimiento sin from_location ni to_location.
type MissingLocationError struct {
	MovementID string // vacío en creación
}

func (e *MissingLocationError) Error() string { return ErrMissingLocation.Error() }

// Is permite errors.Is(err, ErrMissingLocation).
func (e *MissingLocationError) Is(target error) bool { return target == ErrMissingLocation }

// InUseError: borrado bloqueado porque existen movimientos que referencian el registro.
type InUseError struct {
	Kind      string // "product" | "location"
	ID        string
	Movements int
}

func (e *InUseError) Error() string {
	if e.Movements > 0 {
		return fmt.Sprintf("%s %s tiene %d movimientos", e.Kind, e.ID, e.Movements)
	}
	return fmt.Sprintf("%s %s tiene movimientos", e.Kind, e.ID)
}

// Is permite errors.Is(err, ErrInUse).
func (e *InUseError) Is(target error) bool { return target == ErrInUse }
