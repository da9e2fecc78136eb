package usecase

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// recentMovements cantidad de movimientos recientes en el dashboard.
const recentMovements = 5

// DashboardUseCase totales del catálogo y últimos movimientos.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	movRepo      repository.MovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, locationRepo: locationRepo, movRepo: movRepo}
}

// Summary devuelve los totales y los cinco movimientos más recientes.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardDTO, error) {
	products, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := uc.locationRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.movRepo.Recent(ctx, recentMovements)
	if err != nil {
		return nil, err
	}
	items, err := ledger.NewNameResolver(uc.productRepo, uc.locationRepo).Movements(ctx, recent)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardDTO{
		TotalProducts:   products,
		TotalLocations:  locations,
		TotalMovements:  movements,
		RecentMovements: items,
	}, nil
}
