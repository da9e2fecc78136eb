package inventory

import (
	"cmp"
	"slices"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// Key identifica una celda producto × ubicación del balance.
type Key struct {
	ProductID  string
	LocationID string
}

// Balance es una línea del reporte de balance. Product o Location quedan en nil
// cuando el movimiento referencia un registro que ya no existe; la línea se emite igual.
type Balance struct {
	ProductID  string
	LocationID string
	Product    *entity.Product
	Location   *entity.Location
	Qty        int64
}

// Accumulate suma cada movimiento en su celda: +qty en destino, -qty en origen.
// La acumulación es conmutativa, el orden de los movimientos no importa.
func Accumulate(movements []*entity.Movement) map[Key]int64 {
	acc := make(map[Key]int64)
	for _, m := range movements {
		if m.ToLocation != "" {
			acc[Key{ProductID: m.ProductID, LocationID: m.ToLocation}] += m.Qty
		}
		if m.FromLocation != "" {
			acc[Key{ProductID: m.ProductID, LocationID: m.FromLocation}] -= m.Qty
		}
	}
	return acc
}

// Balances construye el reporte: descarta celdas en cero, resuelve producto y ubicación
// y ordena por nombre de producto y luego nombre de ubicación (registro ausente = "").
// Empates se resuelven por IDs para que la salida sea determinista.
func Balances(movements []*entity.Movement, products map[string]*entity.Product, locations map[string]*entity.Location) []Balance {
	acc := Accumulate(movements)
	out := make([]Balance, 0, len(acc))
	for k, qty := range acc {
		if qty == 0 {
			continue
		}
		out = append(out, Balance{
			ProductID:  k.ProductID,
			LocationID: k.LocationID,
			Product:    products[k.ProductID],
			Location:   locations[k.LocationID],
			Qty:        qty,
		})
	}
	slices.SortFunc(out, func(a, b Balance) int {
		return cmp.Or(
			cmp.Compare(a.productName(), b.productName()),
			cmp.Compare(a.locationName(), b.locationName()),
			cmp.Compare(a.ProductID, b.ProductID),
			cmp.Compare(a.LocationID, b.LocationID),
		)
	})
	return out
}

func (b Balance) productName() string {
	if b.Product == nil {
		return ""
	}
	return b.Product.Name
}

func (b Balance) locationName() string {
	if b.Location == nil {
		return ""
	}
	return b.Location.Name
}
