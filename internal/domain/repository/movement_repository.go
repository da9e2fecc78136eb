package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de movimientos.
// Los listados se ordenan del más reciente al más antiguo.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*entity.Movement, int, error)
	ListAll(ctx context.Context) ([]*entity.Movement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	ListFromLocation(ctx context.Context, locationID string) ([]*entity.Movement, error)
	ListToLocation(ctx context.Context, locationID string) ([]*entity.Movement, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	CountByLocation(ctx context.Context, locationID string) (int, error)
	Recent(ctx context.Context, n int) ([]*entity.Movement, error)
	Count(ctx context.Context) (int, error)

	// Stock devuelve entradas menos salidas del producto en la ubicación.
	// Si excludeMovementID no es vacío, ese movimiento no suma ni resta.
	Stock(ctx context.Context, productID, locationID, excludeMovementID string) (int64, error)
}
