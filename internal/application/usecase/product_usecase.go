package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se edita: se deriva de los movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	movRepo      repository.MovementRepository
	locationRepo repository.LocationRepository
	txRunner     ledger.TxRunner
	stock        *ledger.StockUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	movRepo repository.MovementRepository,
	locationRepo repository.LocationRepository,
	txRunner ledger.TxRunner,
	stock *ledger.StockUseCase,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo, locationRepo: locationRepo, txRunner: txRunner, stock: stock}
}

// Create crea un nuevo producto. product_id duplicado: domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.Name = strings.TrimSpace(in.Name)
	if in.ProductID == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: product_id y name son requeridos", domain.ErrInvalidInput)
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		ID:          in.ProductID,
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Detail producto con su historial de movimientos y stock por ubicación; (nil, nil) si no existe.
func (uc *ProductUseCase) Detail(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	movs, err := uc.movRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := ledger.NewNameResolver(uc.repo, uc.locationRepo).Movements(ctx, movs)
	if err != nil {
		return nil, err
	}
	lines, err := uc.stock.ByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		ProductResponse: *toProductResponse(product),
		Movements:       items,
		Stock:           lines,
	}, nil
}

// Update actualiza nombre, descripción y precio; (nil, nil) si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos (más recientes primero) con búsqueda por ID, nombre o descripción.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total, Query: page.Query},
	}, nil
}

// Delete elimina un producto sin movimientos. Con movimientos: *domain.InUseError.
// La fila se bloquea para que ningún movimiento nuevo del producto se cuele entre el conteo y el borrado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.LocationRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		n, err := movRepo.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.InUseError{Kind: "product", ID: id, Movements: n}
		}
		if err := productRepo.Delete(ctx, id); err != nil {
			return inUse("product", id, err)
		}
		return nil
	})
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
