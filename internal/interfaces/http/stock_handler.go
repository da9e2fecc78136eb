package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

// StockHandler consultas de stock derivado y reporte de balance.
type StockHandler struct {
	stock   *ledger.StockUseCase
	reports *ledger.ReportUseCase
	errorMapper
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *ledger.StockUseCase, reports *ledger.ReportUseCase, errs errorMapper) *StockHandler {
	return &StockHandler{stock: stock, reports: reports, errorMapper: errs}
}

// Stock godoc
// @Summary      Stock neto de un producto en una ubicación
// @Tags         stock
// @Produce      json
// @Param        product_id           query  string  true   "ID del producto"
// @Param        location_id          query  string  true   "ID de la ubicación"
// @Param        exclude_movement_id  query  string  false  "Movimiento a ignorar en el cálculo"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Stock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")
	if productID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son requeridos"})
	}
	out, err := h.stock.ComputeStock(c.UserContext(), productID, locationID, c.Query("exclude_movement_id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Reporte de balance (producto × ubicación con stock distinto de cero)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.BalanceReportDTO
// @Router       /api/reports/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	out, err := h.stock.BalanceReport(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar el reporte de balance
// @Tags         reports
// @Produce      application/pdf
// @Produce      application/xml
// @Param        format  query  string  false  "pdf | xml"  default(pdf)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance/export [get]
func (h *StockHandler) Export(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", "pdf"))
	data, contentType, err := h.reports.Export(c.UserContext(), format)
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="balance.%s"`, format))
	return c.Send(data)
}
