// Package ledger contiene los casos de uso del libro de movimientos: escritura validada
// de movimientos, consultas de stock y reporte de balance.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// MovementUseCase registra, edita y elimina movimientos. Crear y editar validan el stock
// en la ubicación origen dentro de la misma transacción que la escritura.
type MovementUseCase struct {
	txRunner     TxRunner
	movRepo      repository.MovementRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	newID        func() string
	now          func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		movRepo:      movRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// Create valida y persiste un movimiento nuevo. Asigna movement_id y timestamp.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	m := &entity.Movement{
		ProductID:    strings.TrimSpace(in.ProductID),
		FromLocation: strings.TrimSpace(in.FromLocation),
		ToLocation:   strings.TrimSpace(in.ToLocation),
		Qty:          in.Qty,
		Notes:        in.Notes,
	}
	if m.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if err := inventory.CheckShape(m, ""); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		if err := lockProducts(ctx, productRepo, m.ProductID, m.ProductID); err != nil {
			return err
		}
		if err := ensureLocations(ctx, locationRepo, m.FromLocation, m.ToLocation); err != nil {
			return err
		}
		if err := inventory.Validate(ctx, movRepo, m, ""); err != nil {
			return err
		}
		m.ID = uc.newID()
		m.Timestamp = uc.now().UTC()
		return movRepo.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return NewNameResolver(uc.productRepo, uc.locationRepo).Movement(ctx, m)
}

// Update edita un movimiento existente. El stock disponible en origen se calcula
// excluyendo el propio movimiento (estado previo a la edición). El timestamp no cambia.
// Devuelve domain.ErrNotFound si el movimiento no existe.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	var updated entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		existing, err := movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		updated = *existing
		applyUpdate(&updated, in)
		if updated.ProductID == "" {
			return fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
		}
		if err := inventory.CheckShape(&updated, id); err != nil {
			return err
		}
		if err := lockProducts(ctx, productRepo, updated.ProductID, existing.ProductID); err != nil {
			return err
		}
		if err := ensureLocations(ctx, locationRepo, updated.FromLocation, updated.ToLocation); err != nil {
			return err
		}
		if err := inventory.Validate(ctx, movRepo, &updated, id); err != nil {
			return err
		}
		return movRepo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return NewNameResolver(uc.productRepo, uc.locationRepo).Movement(ctx, &updated)
}

// Delete elimina un movimiento. No se revalida el stock que dependía de él.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.movRepo.Delete(ctx, id)
}

// GetByID obtiene un movimiento; (nil, nil) si no existe.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return NewNameResolver(uc.productRepo, uc.locationRepo).Movement(ctx, m)
}

// List lista movimientos (más recientes primero) con búsqueda por ID, producto o nombre de producto.
func (uc *MovementUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.movRepo.List(ctx, repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items, err := NewNameResolver(uc.productRepo, uc.locationRepo).Movements(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total, Query: page.Query},
	}, nil
}

func applyUpdate(m *entity.Movement, in dto.UpdateMovementRequest) {
	if in.ProductID != nil {
		m.ProductID = strings.TrimSpace(*in.ProductID)
	}
	if in.FromLocation != nil {
		m.FromLocation = strings.TrimSpace(*in.FromLocation)
	}
	if in.ToLocation != nil {
		m.ToLocation = strings.TrimSpace(*in.ToLocation)
	}
	if in.Qty != nil {
		m.Qty = *in.Qty
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
}

// lockProducts bloquea las filas de los productos afectados en orden de ID (evita deadlocks
// cuando una edición cambia de producto). El producto destino debe existir; el anterior puede faltar.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, productID, previousID string) error {
	ids := []string{productID}
	if previousID != "" && previousID != productID {
		ids = append(ids, previousID)
	}
	slices.Sort(ids)
	for _, id := range ids {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil && id == productID {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
	}
	return nil
}

// ensureLocations verifica que las ubicaciones informadas existan.
func ensureLocations(ctx context.Context, locationRepo repository.LocationRepository, ids ...string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		l, err := locationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
		}
	}
	return nil
}
