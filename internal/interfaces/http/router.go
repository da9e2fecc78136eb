package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LocationUC  *usecase.LocationUseCase
	DashboardUC *usecase.DashboardUseCase
	MovementUC  *ledger.MovementUseCase
	StockUC     *ledger.StockUseCase
	ReportUC    *ledger.ReportUseCase
	JWTSecret   string // vacío: escrituras sin autenticación
	Logger      *logger.Logger
}

// Router registra las rutas de la API. Las lecturas son públicas. Con JWTSecret las escrituras
// exigen Bearer Token de admin o bodeguero, y borrar productos o ubicaciones solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	errs := errorMapper{log: log}

	var write, admin []fiber.Handler
	if deps.JWTSecret != "" {
		auth := AuthMiddleware(deps.JWTSecret)
		write = []fiber.Handler{auth, RequireRole(RoleAdmin, RoleBodeguero)}
		admin = []fiber.Handler{auth, RequireRole(RoleAdmin)}
	}

	api := app.Group("/api")

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	api.Get("/dashboard", dashboardHandler.Summary)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, errs)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", guarded(write, productHandler.Create)...)
	products.Put("/:id", guarded(write, productHandler.Update)...)
	products.Delete("/:id", guarded(admin, productHandler.Delete)...)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, errs)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", guarded(write, locationHandler.Create)...)
	locations.Put("/:id", guarded(write, locationHandler.Update)...)
	locations.Delete("/:id", guarded(admin, locationHandler.Delete)...)

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, errs)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", guarded(write, movementHandler.Create)...)
	movements.Put("/:id", guarded(write, movementHandler.Update)...)
	movements.Delete("/:id", guarded(write, movementHandler.Delete)...)

	stockHandler := NewStockHandler(deps.StockUC, deps.ReportUC, errs)
	api.Get("/stock", stockHandler.Stock)
	api.Get("/reports/balance", stockHandler.Balance)
	api.Get("/reports/balance/export", stockHandler.Export)
}

// guarded antepone los middlewares de autorización al handler.
func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	return append(append([]fiber.Handler{}, guards...), h)
}
