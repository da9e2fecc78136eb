package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// ReportUseCase exporta el reporte de balance en los formatos registrados ("pdf", "xml").
type ReportUseCase struct {
	stock     *StockUseCase
	renderers map[string]BalanceRenderer
}

// NewReportUseCase construye el caso de uso. renderers: formato → renderer.
func NewReportUseCase(stock *StockUseCase, renderers map[string]BalanceRenderer) *ReportUseCase {
	return &ReportUseCase{stock: stock, renderers: renderers}
}

// Export genera el reporte en el formato pedido y devuelve (bytes, content-type).
// Formato desconocido: domain.ErrInvalidInput.
func (uc *ReportUseCase) Export(ctx context.Context, format string) ([]byte, string, error) {
	r, ok := uc.renderers[strings.ToLower(format)]
	if !ok {
		return nil, "", fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	report, err := uc.stock.BalanceReport(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := r.Render(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("render %s: %w", format, err)
	}
	return data, r.ContentType(), nil
}

// Formats lista los formatos disponibles.
func (uc *ReportUseCase) Formats() []string {
	out := make([]string, 0, len(uc.renderers))
	for f := range uc.renderers {
		out = append(out, f)
	}
	return out
}
