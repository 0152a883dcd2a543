package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/pdv-api/internal/application/analytics"
	"github.com/jhoicas/pdv-api/internal/application/dto"
)

// FinanceHandler maneja los endpoints de resumen financiero.
type FinanceHandler struct {
	uc *appanalytics.FinanceUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *appanalytics.FinanceUseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen financiero
// @Description  Ingresos, costos, utilidad, margen y punto de equilibrio sobre las ventas del rango.
// @Tags         finance
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200  {object}  dto.FinanceSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) GetSummary(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.GetSummary(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDashboard devuelve el resumen del día, del mes en curso y los productos más vendidos.
// GET /api/finance/dashboard
//
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *FinanceHandler) GetDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
