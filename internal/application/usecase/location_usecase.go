package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones (bodegas, tiendas, zonas de devolución).
type LocationUseCase struct {
	repo        repository.LocationRepository
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	txRunner    ledger.TxRunner
	stock       *ledger.StockUseCase
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	repo repository.LocationRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	txRunner ledger.TxRunner,
	stock *ledger.StockUseCase,
) *LocationUseCase {
	return &LocationUseCase{repo: repo, movRepo: movRepo, productRepo: productRepo, txRunner: txRunner, stock: stock}
}

// Create crea una nueva ubicación. location_id duplicado: domain.ErrDuplicate.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	in.LocationID = strings.TrimSpace(in.LocationID)
	in.Name = strings.TrimSpace(in.Name)
	if in.LocationID == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: location_id y name son requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	location := &entity.Location{
		ID:        in.LocationID,
		Name:      in.Name,
		Address:   in.Address,
		Manager:   in.Manager,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID; (nil, nil) si no existe.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// Detail ubicación con movimientos de salida, de entrada y stock por producto; (nil, nil) si no existe.
func (uc *LocationUseCase) Detail(ctx context.Context, id string) (*dto.LocationDetailResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	names := ledger.NewNameResolver(uc.productRepo, uc.repo)
	fromList, err := uc.movRepo.ListFromLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	toList, err := uc.movRepo.ListToLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	from, err := names.Movements(ctx, fromList)
	if err != nil {
		return nil, err
	}
	to, err := names.Movements(ctx, toList)
	if err != nil {
		return nil, err
	}
	lines, err := uc.stock.ByLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.LocationDetailResponse{
		LocationResponse: *toLocationResponse(location),
		MovementsFrom:    from,
		MovementsTo:      to,
		Stock:            lines,
	}, nil
}

// Update actualiza nombre, dirección y encargado; (nil, nil) si no existe.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
		}
		location.Name = name
	}
	if in.Address != nil {
		location.Address = *in.Address
	}
	if in.Manager != nil {
		location.Manager = *in.Manager
	}
	if err := uc.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones (más recientes primero) con búsqueda por ID, nombre o dirección.
func (uc *LocationUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total, Query: page.Query},
	}, nil
}

// Delete elimina una ubicación que no figure como origen ni destino de ningún movimiento.
// Si un movimiento concurrente la referencia, la FK de la base rechaza el borrado (ErrInUse).
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		location, err := locationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrNotFound
		}
		n, err := movRepo.CountByLocation(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.InUseError{Kind: "location", ID: id, Movements: n}
		}
		if err := locationRepo.Delete(ctx, id); err != nil {
			return inUse("location", id, err)
		}
		return nil
	})
}

// inUse convierte el ErrInUse genérico del repositorio (violación de FK) en un InUseError con contexto.
func inUse(kind, id string, err error) error {
	if errors.Is(err, domain.ErrInUse) {
		return &domain.InUseError{Kind: kind, ID: id}
	}
	return err
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		LocationID: l.ID,
		Name:       l.Name,
		Address:    l.Address,
		Manager:    l.Manager,
		CreatedAt:  l.CreatedAt,
	}
}
