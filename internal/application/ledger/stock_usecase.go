package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// StockUseCase consultas de stock derivado y reporte de balance. Todo se recalcula en cada llamada.
type StockUseCase struct {
	movRepo      repository.MovementRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *StockUseCase {
	return &StockUseCase{movRepo: movRepo, productRepo: productRepo, locationRepo: locationRepo, now: time.Now}
}

// ComputeStock devuelve el stock neto del producto en la ubicación, opcionalmente
// excluyendo un movimiento. IDs desconocidos devuelven 0.
func (uc *StockUseCase) ComputeStock(ctx context.Context, productID, locationID, excludeMovementID string) (*dto.StockResponse, error) {
	qty, err := uc.movRepo.Stock(ctx, productID, locationID, excludeMovementID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:         productID,
		LocationID:        locationID,
		ExcludeMovementID: excludeMovementID,
		Qty:               qty,
	}, nil
}

// Balances devuelve las celdas producto × ubicación con stock distinto de cero, ordenadas.
func (uc *StockUseCase) Balances(ctx context.Context) ([]inventory.Balance, error) {
	movs, err := uc.movRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := uc.locationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pm := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		pm[p.ID] = p
	}
	lm := make(map[string]*entity.Location, len(locations))
	for _, l := range locations {
		lm[l.ID] = l
	}
	return inventory.Balances(movs, pm, lm), nil
}

// BalanceReport arma el reporte de balance con valorización (qty × unit_price).
func (uc *StockUseCase) BalanceReport(ctx context.Context) (*dto.BalanceReportDTO, error) {
	balances, err := uc.Balances(ctx)
	if err != nil {
		return nil, err
	}
	report := &dto.BalanceReportDTO{
		GeneratedAt: uc.now().UTC(),
		Lines:       make([]dto.BalanceLineDTO, 0, len(balances)),
		TotalValue:  decimal.Zero,
	}
	for _, b := range balances {
		line := dto.BalanceLineDTO{
			ProductID:  b.ProductID,
			LocationID: b.LocationID,
			Product:    toProductResponse(b.Product),
			Location:   toLocationResponse(b.Location),
			Qty:        b.Qty,
			Value:      decimal.Zero,
		}
		if b.Product != nil {
			line.Value = b.Product.UnitPrice.Mul(decimal.NewFromInt(b.Qty))
		}
		report.Lines = append(report.Lines, line)
		report.TotalQty += b.Qty
		report.TotalValue = report.TotalValue.Add(line.Value)
	}
	return report, nil
}

// ByProduct stock no nulo del producto en cada ubicación (vista de detalle).
func (uc *StockUseCase) ByProduct(ctx context.Context, productID string) ([]dto.StockLine, error) {
	movs, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.stockLines(ctx, movs, func(k inventory.Key) bool { return k.ProductID == productID })
}

// ByLocation stock no nulo de cada producto en la ubicación (vista de detalle).
func (uc *StockUseCase) ByLocation(ctx context.Context, locationID string) ([]dto.StockLine, error) {
	from, err := uc.movRepo.ListFromLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	to, err := uc.movRepo.ListToLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	movs := append(from, to...)
	return uc.stockLines(ctx, dedupe(movs), func(k inventory.Key) bool { return k.LocationID == locationID })
}

func (uc *StockUseCase) stockLines(ctx context.Context, movs []*entity.Movement, keep func(inventory.Key) bool) ([]dto.StockLine, error) {
	names := NewNameResolver(uc.productRepo, uc.locationRepo)
	var lines []dto.StockLine
	for _, b := range inventory.Balances(movs, nil, nil) {
		if !keep(inventory.Key{ProductID: b.ProductID, LocationID: b.LocationID}) {
			continue
		}
		pn, err := names.ProductName(ctx, b.ProductID)
		if err != nil {
			return nil, err
		}
		ln, err := names.LocationName(ctx, b.LocationID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.StockLine{
			ProductID:    b.ProductID,
			ProductName:  pn,
			LocationID:   b.LocationID,
			LocationName: ln,
			Qty:          b.Qty,
		})
	}
	if lines == nil {
		lines = []dto.StockLine{}
	}
	return lines, nil
}

// dedupe quita movimientos repetidos (un traslado de la ubicación a sí misma aparece en ambas listas).
func dedupe(movs []*entity.Movement) []*entity.Movement {
	seen := make(map[string]bool, len(movs))
	out := movs[:0]
	for _, m := range movs {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		CreatedAt:   p.CreatedAt,
	}
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
