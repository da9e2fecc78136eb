// Package app arma los casos de uso sobre un Store; lo comparten la API, el seeder y las pruebas.
package app

import (
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/xmlreport"
)

// Services casos de uso listos para usar.
type Services struct {
	Products  *usecase.ProductUseCase
	Locations *usecase.LocationUseCase
	Dashboard *usecase.DashboardUseCase
	Movements *ledger.MovementUseCase
	Stock     *ledger.StockUseCase
	Reports   *ledger.ReportUseCase
}

// NewServices construye los casos de uso. title aparece en la cabecera del PDF de balance.
func NewServices(store *storage.Store, title string) *Services {
	stock := ledger.NewStockUseCase(store.Movements, store.Products, store.Locations)
	renderers := map[string]ledger.BalanceRenderer{
		"pdf": pdf.NewBalanceRenderer(title),
		"xml": xmlreport.NewBalanceRenderer(),
	}
	return &Services{
		Products:  usecase.NewProductUseCase(store.Products, store.Movements, store.Locations, store.Tx, stock),
		Locations: usecase.NewLocationUseCase(store.Locations, store.Movements, store.Products, store.Tx, stock),
		Dashboard: usecase.NewDashboardUseCase(store.Products, store.Locations, store.Movements),
		Movements: ledger.NewMovementUseCase(store.Tx, store.Movements, store.Products, store.Locations),
		Stock:     stock,
		Reports:   ledger.NewReportUseCase(stock, renderers),
	}
}
