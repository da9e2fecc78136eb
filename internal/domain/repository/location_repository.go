package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*entity.Location, int, error)
	ListAll(ctx context.Context) ([]*entity.Location, error)
	Count(ctx context.Context) (int, error)
}
