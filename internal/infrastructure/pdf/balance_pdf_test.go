package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
)

func TestBalanceRenderer_Render(t *testing.T) {
	report := &dto.BalanceReportDTO{
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Lines: []dto.BalanceLineDTO{
			{ProductID: "P1", LocationID: "WH", Product: &dto.ProductResponse{Name: "Laptop"}, Location: &dto.LocationResponse{Name: "Bodega"}, Qty: 30, Value: decimal.NewFromInt(36000)},
			{ProductID: "P9", LocationID: "WH", Location: &dto.LocationResponse{Name: "Bodega"}, Qty: 3, Value: decimal.Zero},
		},
		TotalQty:   33,
		TotalValue: decimal.NewFromInt(36000),
	}

	r := NewBalanceRenderer("Inventario Ledger")
	out, err := r.Render(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", r.ContentType())
}

func TestBalanceRenderer_EmptyReport(t *testing.T) {
	out, err := NewBalanceRenderer("").Render(context.Background(), &dto.BalanceReportDTO{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1.000.000", formatQty(1000000))
	assert.Equal(t, "-2.500", formatQty(-2500))
	assert.Equal(t, "$25.000,50", formatMoney(decimal.RequireFromString("25000.5")))
	assert.Equal(t, "$0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "P9 (eliminado)", productLabel(dto.BalanceLineDTO{ProductID: "P9"}))
}
