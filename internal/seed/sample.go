// Package seed carga datos de ejemplo y catálogos desde CSV usando los casos de uso,
// de modo que todo movimiento pasa por la misma validación que la API.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/app"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// Result conteo de registros creados.
type Result struct {
	Products  int
	Locations int
	Movements int
}

var sampleProducts = []dto.CreateProductRequest{
	{ProductID: "LAPTOP001", Name: "Dell Laptop", Description: "Dell Inspiron 15 3000", UnitPrice: decimal.NewFromInt(45000)},
	{ProductID: "MOUSE001", Name: "Wireless Mouse", Description: "Logitech M705 Wireless Mouse", UnitPrice: decimal.NewFromInt(2500)},
	{ProductID: "KEYBOARD001", Name: "Mechanical Keyboard", Description: "Corsair K95 RGB Mechanical Keyboard", UnitPrice: decimal.NewFromInt(8500)},
	{ProductID: "MONITOR001", Name: "LED Monitor", Description: `Samsung 24" LED Monitor`, UnitPrice: decimal.NewFromInt(12000)},
}

var sampleLocations = []dto.CreateLocationRequest{
	{LocationID: "WH001", Name: "Main Warehouse", Address: "123 Industrial Area, City", Manager: "John Smith"},
	{LocationID: "STORE_A", Name: "Store A", Address: "456 Mall Road, City", Manager: "Jane Doe"},
	{LocationID: "STORE_B", Name: "Store B", Address: "789 Market Street, City", Manager: "Bob Johnson"},
	{LocationID: "RETURNS", Name: "Returns Section", Address: "Main Warehouse - Returns Area", Manager: "Alice Brown"},
}

// sampleMovements en orden de registro: cada salida tiene stock suficiente en ese punto.
var sampleMovements = []dto.CreateMovementRequest{
	{ProductID: "LAPTOP001", ToLocation: "WH001", Qty: 50, Notes: "Initial stock"},
	{ProductID: "MOUSE001", ToLocation: "WH001", Qty: 100, Notes: "Initial stock"},
	{ProductID: "KEYBOARD001", ToLocation: "WH001", Qty: 75, Notes: "Initial stock"},
	{ProductID: "MONITOR001", ToLocation: "WH001", Qty: 30, Notes: "Initial stock"},

	{ProductID: "LAPTOP001", FromLocation: "WH001", ToLocation: "STORE_A", Qty: 10, Notes: "Store A restock"},
	{ProductID: "MOUSE001", FromLocation: "WH001", ToLocation: "STORE_A", Qty: 20, Notes: "Store A restock"},
	{ProductID: "LAPTOP001", FromLocation: "WH001", ToLocation: "STORE_B", Qty: 8, Notes: "Store B restock"},
	{ProductID: "KEYBOARD001", FromLocation: "WH001", ToLocation: "STORE_B", Qty: 15, Notes: "Store B restock"},

	{ProductID: "LAPTOP001", FromLocation: "STORE_A", Qty: 3, Notes: "Customer sale"},
	{ProductID: "MOUSE001", FromLocation: "STORE_A", Qty: 5, Notes: "Customer sale"},
	{ProductID: "LAPTOP001", FromLocation: "STORE_B", Qty: 2, Notes: "Customer sale"},
	{ProductID: "KEYBOARD001", FromLocation: "STORE_B", Qty: 4, Notes: "Customer sale"},

	{ProductID: "LAPTOP001", ToLocation: "RETURNS", Qty: 1, Notes: "Customer return - defective"},
	{ProductID: "MOUSE001", ToLocation: "RETURNS", Qty: 2, Notes: "Customer return"},

	{ProductID: "MONITOR001", FromLocation: "WH001", ToLocation: "STORE_A", Qty: 8, Notes: "Store A monitor display"},
	{ProductID: "MONITOR001", FromLocation: "WH001", ToLocation: "STORE_B", Qty: 6, Notes: "Store B monitor display"},
	{ProductID: "KEYBOARD001", FromLocation: "WH001", ToLocation: "STORE_A", Qty: 12, Notes: "Store A keyboard stock"},

	{ProductID: "MONITOR001", FromLocation: "STORE_A", Qty: 3, Notes: "Customer sale"},
	{ProductID: "MONITOR001", FromLocation: "STORE_B", Qty: 2, Notes: "Customer sale"},
	{ProductID: "KEYBOARD001", FromLocation: "STORE_A", Qty: 6, Notes: "Customer sale"},

	{ProductID: "LAPTOP001", FromLocation: "STORE_A", ToLocation: "STORE_B", Qty: 2, Notes: "Inter-store transfer"},
	{ProductID: "MOUSE001", FromLocation: "STORE_A", ToLocation: "STORE_B", Qty: 5, Notes: "Inter-store transfer"},
}

// Sample crea el catálogo de ejemplo (omitiendo lo que ya exista) y, solo si el libro
// está vacío, registra los movimientos de ejemplo. Es idempotente.
func Sample(ctx context.Context, svc *app.Services, log *logger.Logger) (Result, error) {
	var res Result
	for _, p := range sampleProducts {
		if _, err := svc.Products.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			return res, fmt.Errorf("seed product %s: %w", p.ProductID, err)
		}
		res.Products++
	}
	for _, l := range sampleLocations {
		if _, err := svc.Locations.Create(ctx, l); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			return res, fmt.Errorf("seed location %s: %w", l.LocationID, err)
		}
		res.Locations++
	}

	summary, err := svc.Dashboard.Summary(ctx)
	if err != nil {
		return res, err
	}
	if summary.TotalMovements > 0 {
		log.Info().Int("movements", summary.TotalMovements).Msg("seed: el libro ya tiene movimientos, se omiten los de ejemplo")
		return res, nil
	}
	for i, m := range sampleMovements {
		if _, err := svc.Movements.Create(ctx, m); err != nil {
			return res, fmt.Errorf("seed movement #%d (%s): %w", i+1, m.ProductID, err)
		}
		res.Movements++
	}
	log.Info().
		Int("products", res.Products).
		Int("locations", res.Locations).
		Int("movements", res.Movements).
		Msg("seed: datos de ejemplo cargados")
	return res, nil
}
