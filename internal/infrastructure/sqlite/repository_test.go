package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

func openTestDB(t *testing.T) (*ProductRepo, *LocationRepo, *MovementRepo) {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProductRepository(db), NewLocationRepository(db), NewMovementRepository(db)
}

func seedLedger(t *testing.T, products *ProductRepo, locations *LocationRepo, movements *MovementRepo) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "P1", Name: "Laptop", UnitPrice: decimal.RequireFromString("1200.50")}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "P2", Name: "Mouse"}))
	require.NoError(t, locations.Create(ctx, &entity.Location{ID: "WH", Name: "Bodega Central"}))
	require.NoError(t, locations.Create(ctx, &entity.Location{ID: "S1", Name: "Tienda Norte"}))

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	movs := []*entity.Movement{
		{ID: "M1", ProductID: "P1", ToLocation: "WH", Qty: 50},
		{ID: "M2", ProductID: "P1", FromLocation: "WH", ToLocation: "S1", Qty: 20},
		{ID: "M3", ProductID: "P1", FromLocation: "S1", Qty: 5},
		{ID: "M4", ProductID: "P2", ToLocation: "WH", Qty: 7},
	}
	for i, m := range movs {
		m.Timestamp = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, movements.Create(ctx, m))
	}
}

func TestMovementRepo_Stock(t *testing.T) {
	products, locations, movements := openTestDB(t)
	seedLedger(t, products, locations, movements)
	ctx := context.Background()

	cases := []struct {
		name, product, location, exclude string
		want                             int64
	}{
		{"bodega", "P1", "WH", "", 30},
		{"tienda", "P1", "S1", "", 15},
		{"otro producto", "P2", "WH", "", 7},
		{"excluye entrada", "P1", "WH", "M1", -20},
		{"excluye traslado", "P1", "S1", "M2", -5},
		{"exclusión inexistente", "P1", "WH", "NOPE", 30},
		{"producto desconocido", "PX", "WH", "", 0},
		{"ubicación desconocida", "P1", "LX", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := movements.Stock(ctx, tc.product, tc.location, tc.exclude)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMovementRepo_RoundTripNullLocations(t *testing.T) {
	products, locations, movements := openTestDB(t)
	seedLedger(t, products, locations, movements)
	ctx := context.Background()

	m, err := movements.GetByID(ctx, "M1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "", m.FromLocation)
	assert.Equal(t, "WH", m.ToLocation)
	assert.Equal(t, entity.MovementTypeStockIn, m.Type())
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), m.Timestamp)

	missing, err := movements.GetByID(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMovementRepo_ListNewestFirstAndSearch(t *testing.T) {
	products, locations, movements := openTestDB(t)
	seedLedger(t, products, locations, movements)
	ctx := context.Background()

	list, total, err := movements.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, list, 4)
	assert.Equal(t, "M4", list[0].ID)
	assert.Equal(t, "M1", list[3].ID)

	list, total, err = movements.List(ctx, repository.ListFilter{Query: "mouse"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "M4", list[0].ID)

	list, total, err = movements.List(ctx, repository.ListFilter{Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, list, 1)

	recent, err := movements.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "M3", recent[1].ID)
}

func TestMovementRepo_Counts(t *testing.T) {
	products, locations, movements := openTestDB(t)
	seedLedger(t, products, locations, movements)
	ctx := context.Background()

	n, err := movements.CountByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = movements.CountByLocation(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	from, err := movements.ListFromLocation(ctx, "WH")
	require.NoError(t, err)
	assert.Len(t, from, 1)
	to, err := movements.ListToLocation(ctx, "WH")
	require.NoError(t, err)
	assert.Len(t, to, 2)
}

func TestRepos_ForeignKeysGuardDeletes(t *testing.T) {
	products, locations, movements := openTestDB(t)
	seedLedger(t, products, locations, movements)
	ctx := context.Background()

	assert.ErrorIs(t, products.Delete(ctx, "P1"), domain.ErrInUse)
	assert.ErrorIs(t, locations.Delete(ctx, "S1"), domain.ErrInUse)

	require.NoError(t, locations.Create(ctx, &entity.Location{ID: "EMPTY", Name: "Vacía"}))
	require.NoError(t, locations.Delete(ctx, "EMPTY"))

	err := movements.Create(ctx, &entity.Movement{ID: "BAD", ProductID: "P1", ToLocation: "NOWHERE", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_DuplicateAndDecimal(t *testing.T) {
	products, _, _ := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &entity.Product{ID: "P1", Name: "Laptop", UnitPrice: decimal.RequireFromString("99.99")}))
	assert.ErrorIs(t, products.Create(ctx, &entity.Product{ID: "P1", Name: "Otro"}), domain.ErrDuplicate)

	p, err := products.GetByID(ctx, "P1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, decimal.RequireFromString("99.99").Equal(p.UnitPrice))

	p.Name = "Laptop Pro"
	require.NoError(t, products.Update(ctx, p))
	assert.ErrorIs(t, products.Update(ctx, &entity.Product{ID: "NOPE", Name: "x"}), domain.ErrNotFound)

	list, total, err := products.List(ctx, repository.ListFilter{Query: "pro"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Laptop Pro", list[0].Name)

	_, total, err = products.List(ctx, repository.ListFilter{Query: "%"})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
