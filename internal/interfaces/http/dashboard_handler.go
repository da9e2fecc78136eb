package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
)

// DashboardHandler resumen para la pantalla principal.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
	errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, errs errorMapper) *DashboardHandler {
	return &DashboardHandler{uc: uc, errorMapper: errs}
}

// Summary godoc
// @Summary      Totales y últimos movimientos
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
