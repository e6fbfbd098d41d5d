package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/application/reports"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *reports.ReportsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.ReportsUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los agregados del tablero: valoración de inventario,
// cartera y gastos del mes en curso.
// GET /api/dashboard/summary
//
// Los bloques son advisory: si una consulta falla el bloque degrada a ceros
// en lugar de tumbar la respuesta completa.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
