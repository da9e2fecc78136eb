package ledger

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// NameResolver resuelve nombres de producto y ubicación con caché por petición,
// para no consultar el mismo registro una vez por movimiento.
type NameResolver struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	pNames    map[string]string
	lNames    map[string]string
}

// NewNameResolver construye el resolvedor.
func NewNameResolver(products repository.ProductRepository, locations repository.LocationRepository) *NameResolver {
	return &NameResolver{
		products:  products,
		locations: locations,
		pNames:    make(map[string]string),
		lNames:    make(map[string]string),
	}
}

// ProductName devuelve "" si el producto no existe.
func (r *NameResolver) ProductName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	if name, ok := r.pNames[id]; ok {
		return name, nil
	}
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	name := ""
	if p != nil {
		name = p.Name
	}
	r.pNames[id] = name
	return name, nil
}

// LocationName devuelve "" si la ubicación no existe.
func (r *NameResolver) LocationName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	if name, ok := r.lNames[id]; ok {
		return name, nil
	}
	l, err := r.locations.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	name := ""
	if l != nil {
		name = l.Name
	}
	r.lNames[id] = name
	return name, nil
}

// Movement convierte un movimiento a DTO con tipo y nombres resueltos.
func (r *NameResolver) Movement(ctx context.Context, m *entity.Movement) (*dto.MovementResponse, error) {
	productName, err := r.ProductName(ctx, m.ProductID)
	if err != nil {
		return nil, err
	}
	fromName, err := r.LocationName(ctx, m.FromLocation)
	if err != nil {
		return nil, err
	}
	toName, err := r.LocationName(ctx, m.ToLocation)
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{
		MovementID:       m.ID,
		Type:             string(m.Type()),
		ProductID:        m.ProductID,
		ProductName:      productName,
		FromLocation:     m.FromLocation,
		FromLocationName: fromName,
		ToLocation:       m.ToLocation,
		ToLocationName:   toName,
		Qty:              m.Qty,
		Notes:            m.Notes,
		Timestamp:        m.Timestamp,
	}, nil
}

// Movements convierte una lista de movimientos.
func (r *NameResolver) Movements(ctx context.Context, list []*entity.Movement) ([]dto.MovementResponse, error) {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out, err := r.Movement(ctx, m)
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}
	return items, nil
}
