package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/application/stock"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP de movimientos y alertas (protegido).
type StockHandler struct {
	uc *stock.AdjustQuantityUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.AdjustQuantityUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.AdjustQuantityRequest  true  "type (IN|OUT|ADJUSTMENT), quantity, reason, unit_cost (IN)"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := GetUserID(c)
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.AdjustQuantity(c.Context(), stock.MovementInput{
		StockItemID: id,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Reference:   in.Reference,
		PerformedBy: userID,
		UnitCost:    in.UnitCost,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type o quantity inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements GET /api/stock-items/:id/movements?limit=20&offset=0
// Historial del artículo, más recientes primero.
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	id := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movs, err := h.uc.Movements(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// LowStockAlerts GET /api/stock/alerts
// Artículos en o bajo su umbral mínimo, el déficit más grande primero.
func (h *StockHandler) LowStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.LowStockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, &dto.LowStockAlertResponse{
			Item: dto.StockItemResponse{
				ID:              a.Item.ID,
				CategoryID:      a.Item.CategoryID,
				SKU:             a.Item.SKU,
				Barcode:         a.Item.Barcode,
				Name:            a.Item.Name,
				Description:     a.Item.Description,
				PurchasePrice:   a.Item.PurchasePrice,
				WholesalePrice:  a.Item.WholesalePrice,
				RetailPrice:     a.Item.RetailPrice,
				CurrentQuantity: a.Item.CurrentQuantity,
				MinStockLevel:   a.Item.MinStockLevel,
				Unit:            a.Item.Unit,
				ItemsInPack:     a.Item.ItemsInPack,
			},
			Deficit: a.Deficit,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:          m.ID,
		StockItemID: m.StockItemID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Reference:   m.Reference,
		PerformedBy: m.PerformedBy,
		CreatedAt:   m.CreatedAt,
	}
}
