package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/storage"
)

type suite struct {
	products  *usecase.ProductUseCase
	locations *usecase.LocationUseCase
	dashboard *usecase.DashboardUseCase
	movements *ledger.MovementUseCase
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	store, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	stock := ledger.NewStockUseCase(store.Movements, store.Products, store.Locations)
	return &suite{
		products:  usecase.NewProductUseCase(store.Products, store.Movements, store.Locations, store.Tx, stock),
		locations: usecase.NewLocationUseCase(store.Locations, store.Movements, store.Products, store.Tx, stock),
		dashboard: usecase.NewDashboardUseCase(store.Products, store.Locations, store.Movements),
		movements: ledger.NewMovementUseCase(store.Tx, store.Movements, store.Products, store.Locations),
	}
}

func (s *suite) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := s.products.Create(ctx, dto.CreateProductRequest{ProductID: "P1", Name: "Laptop", UnitPrice: decimal.RequireFromString("1200.50")})
	require.NoError(t, err)
	_, err = s.products.Create(ctx, dto.CreateProductRequest{ProductID: "P2", Name: "Mouse"})
	require.NoError(t, err)
	_, err = s.locations.Create(ctx, dto.CreateLocationRequest{LocationID: "WH", Name: "Bodega", Manager: "Ana"})
	require.NoError(t, err)
	_, err = s.locations.Create(ctx, dto.CreateLocationRequest{LocationID: "S1", Name: "Tienda 1"})
	require.NoError(t, err)
}

func TestProductCreate_Validaciones(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	out, err := s.products.Create(ctx, dto.CreateProductRequest{ProductID: "  P1 ", Name: " Laptop ", UnitPrice: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "P1", out.ProductID)
	assert.Equal(t, "Laptop", out.Name)

	_, err = s.products.Create(ctx, dto.CreateProductRequest{ProductID: "P1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = s.products.Create(ctx, dto.CreateProductRequest{ProductID: "P9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.products.Create(ctx, dto.CreateProductRequest{ProductID: "P9", Name: "X", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Parcial(t *testing.T) {
	s := newSuite(t)
	s.seed(t)
	ctx := context.Background()

	price := decimal.RequireFromString("999.99")
	out, err := s.products.Update(ctx, "P1", dto.UpdateProductRequest{UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", out.Name)
	assert.True(t, price.Equal(out.UnitPrice))

	empty := " "
	_, err = s.products.Update(ctx, "P1", dto.UpdateProductRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = s.products.Update(ctx, "NOPE", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductDelete_ConMovimientos(t *testing.T) {
	s := newSuite(t)
	s.seed(t)
	ctx := context.Background()
	_, err := s.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P1", ToLocation: "WH", Qty: 3})
	require.NoError(t, err)

	err = s.products.Delete(ctx, "P1")
	var inUse *domain.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "product", inUse.Kind)
	assert.Equal(t, 1, inUse.Movements)

	require.NoError(t, s.products.Delete(ctx, "P2"))
	assert.ErrorIs(t, s.products.Delete(ctx, "P2"), domain.ErrNotFound)
}

func TestLocationDelete_OrigenODestino(t *testing.T) {
	s := newSuite(t)
	s.seed(t)
	ctx := context.Background()
	_, err := s.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P1", ToLocation: "WH", Qty: 3})
	require.NoError(t, err)
	_, err = s.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P1", FromLocation: "WH", ToLocation: "S1", Qty: 1})
	require.NoError(t, err)

	// WH es destino y origen; S1 solo destino.
	err = s.locations.Delete(ctx, "WH")
	var inUse *domain.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 2, inUse.Movements)
	assert.ErrorIs(t, s.locations.Delete(ctx, "S1"), domain.ErrInUse)

	_, err = s.locations.Create(ctx, dto.CreateLocationRequest{LocationID: "RET", Name: "Devoluciones"})
	require.NoError(t, err)
	require.NoError(t, s.locations.Delete(ctx, "RET"))
}

func TestDetail_MovimientosYStock(t *testing.T) {
	s := newSuite(t)
	s.seed(t)
	ctx := context.Background()
	_, err := s.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P1", ToLocation: "WH", Qty: 10})
	require.NoError(t, err)
	_, err = s.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P1", FromLocation: "WH", ToLocation: "S1", Qty: 4})
	require.NoError(t, err)

	pd, err := s.products.Detail(ctx, "P1")
	require.NoError(t, err)
	require.NotNil(t, pd)
	assert.Len(t, pd.Movements, 2)
	assert.Len(t, pd.Stock, 2)

	ld, err := s.locations.Detail(ctx, "WH")
	require.NoError(t, err)
	require.NotNil(t, ld)
	assert.Len(t, ld.MovementsFrom, 1)
	assert.Len(t, ld.MovementsTo, 1)
	require.Len(t, ld.Stock, 1)
	assert.EqualValues(t, 6, ld.Stock[0].Qty)

	missing, err := s.locations.Detail(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestList_BusquedaYPaginacion(t *testing.T) {
	s := newSuite(t)
	s.seed(t)
	ctx := context.Background()

	out, err := s.products.List(ctx, dto.PageRequest{Query: "lap"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "P1", out.Items[0].ProductID)
	assert.Equal(t, 20, out.Page.Limit)

	out, err = s.products.List(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Page.Total)

	locs, err := s.locations.List(ctx, dto.PageRequest{Query: "tienda"})
	require.NoError(t, err)
	require.Len(t, locs.Items, 1)
	assert.Equal(t, "S1", locs.Items[0].LocationID)
}

func TestDashboard_Summary(t *testing.T) {
	s := newSuite(t)
	s.seed(t)
	ctx := context.Background()
	for range 7 {
		_, err := s.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P2", ToLocation: "S1", Qty: 1})
		require.NoError(t, err)
	}

	out, err := s.dashboard.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, 2, out.TotalLocations)
	assert.Equal(t, 7, out.TotalMovements)
	require.Len(t, out.RecentMovements, 5)
	assert.Equal(t, "Mouse", out.RecentMovements[0].ProductName)
	assert.Equal(t, "Tienda 1", out.RecentMovements[0].ToLocationName)
}
