package ledger

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que validar y escribir un movimiento sea una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error) error
}

// BalanceRenderer convierte el reporte de balance a un formato descargable (PDF, XML).
type BalanceRenderer interface {
	ContentType() string
	Render(ctx context.Context, report *dto.BalanceReportDTO) ([]byte, error)
}
