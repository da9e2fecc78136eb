package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

func TestAccumulate_TransferenciasSeCancelanPorProducto(t *testing.T) {
	movs := []*entity.Movement{
		mov("m1", "P1", "", "WH", 50), // entrada externa
		mov("m2", "P1", "WH", "S1", 10),
		mov("m3", "P1", "S1", "S2", 4),
		mov("m4", "P1", "S2", "", 1), // salida externa
	}
	acc := inventory.Accumulate(movs)

	var sum int64
	for k, q := range acc {
		if k.ProductID == "P1" {
			sum += q
		}
	}
	assert.Equal(t, int64(50-1), sum, "suma por producto = entradas externas - salidas externas")
}

func TestBalances_OmiteCeros(t *testing.T) {
	products := map[string]*entity.Product{"P1": {ID: "P1", Name: "Laptop"}}
	locations := map[string]*entity.Location{
		"WH": {ID: "WH", Name: "Bodega"},
		"S1": {ID: "S1", Name: "Tienda"},
	}
	movs := []*entity.Movement{
		mov("m1", "P1", "", "WH", 10),
		mov("m2", "P1", "WH", "S1", 10),
	}
	out := inventory.Balances(movs, products, locations)
	require.Len(t, out, 1)
	assert.Equal(t, "S1", out[0].LocationID)
	assert.Equal(t, int64(10), out[0].Qty)
	for _, b := range out {
		assert.NotZero(t, b.Qty)
	}
}

func TestBalances_OrdenPorNombreProductoYUbicacion(t *testing.T) {
	products := map[string]*entity.Product{
		"LAPTOP": {ID: "LAPTOP", Name: "Dell Laptop"},
		"MOUSE":  {ID: "MOUSE", Name: "Wireless Mouse"},
	}
	locations := map[string]*entity.Location{
		"WH":      {ID: "WH", Name: "Main Warehouse"},
		"STORE_A": {ID: "STORE_A", Name: "Store A"},
	}
	movs := []*entity.Movement{
		mov("m1", "MOUSE", "", "WH", 3),
		mov("m2", "LAPTOP", "", "STORE_A", 2),
		mov("m3", "LAPTOP", "", "WH", 5),
		mov("m4", "MOUSE", "", "STORE_A", 1),
	}
	out := inventory.Balances(movs, products, locations)
	require.Len(t, out, 4)

	got := make([][2]string, 0, len(out))
	for _, b := range out {
		got = append(got, [2]string{b.ProductID, b.LocationID})
	}
	assert.Equal(t, [][2]string{
		{"LAPTOP", "WH"},      // Dell Laptop / Main Warehouse
		{"LAPTOP", "STORE_A"}, // Dell Laptop / Store A
		{"MOUSE", "WH"},
		{"MOUSE", "STORE_A"},
	}, got)
}

// Un producto o ubicación borrados se resuelven como ausentes ("" al ordenar) pero la línea se emite.
func TestBalances_ReferenciasColgantes(t *testing.T) {
	products := map[string]*entity.Product{"P1": {ID: "P1", Name: "Alpha"}}
	locations := map[string]*entity.Location{"WH": {ID: "WH", Name: "Bodega"}}
	movs := []*entity.Movement{
		mov("m1", "P1", "", "WH", 4),
		mov("m2", "GONE", "", "WH", 7),
		mov("m3", "P1", "", "LOST", 2),
	}
	out := inventory.Balances(movs, products, locations)
	require.Len(t, out, 3)

	assert.Equal(t, "GONE", out[0].ProductID)
	assert.Nil(t, out[0].Product)
	assert.Equal(t, int64(7), out[0].Qty)

	assert.Equal(t, "LOST", out[1].LocationID, "ubicación ausente ordena antes que 'Bodega'")
	assert.Nil(t, out[1].Location)
	assert.Equal(t, int64(2), out[1].Qty)

	assert.Equal(t, "WH", out[2].LocationID)
}

func TestBalances_SinMovimientos(t *testing.T) {
	out := inventory.Balances(nil, nil, nil)
	assert.Empty(t, out)
}
