package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mayorista-api/internal/application/billing"
	"github.com/jhoicas/mayorista-api/internal/application/clients"
	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
)

// ClientHandler maneja las peticiones HTTP de clientes, su ledger y sus pagos (protegido).
type ClientHandler struct {
	uc        *clients.ClientUseCase
	ledgerUC  *ledger.LedgerUseCase
	paymentUC *billing.RecordPaymentUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.ClientUseCase, ledgerUC *ledger.LedgerUseCase, paymentUC *billing.RecordPaymentUseCase) *ClientHandler {
	return &ClientHandler{uc: uc, ledgerUC: ledgerUC, paymentUC: paymentUC}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y phone son requeridos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un cliente con ese teléfono"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	client, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if err == domain.ErrClientNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(client)
}

// List GET /api/clients?limit=20&offset=0
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y phone son requeridos"})
		}
		if err == domain.ErrClientNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un cliente con ese teléfono"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(client)
}

// Delete DELETE /api/clients/:id (borrado lógico; el historial del ledger se conserva).
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if err == domain.ErrClientNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetLedger GET /api/clients/:id/ledger?from=2026-01-01&to=2026-01-31
// Devuelve las entradas más recientes primero. from/to aceptan fecha (2006-01-02) o RFC3339.
func (h *ClientHandler) GetLedger(c *fiber.Ctx) error {
	id := c.Params("id")
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (use 2006-01-02 o RFC3339)"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (use 2006-01-02 o RFC3339)"})
	}
	entries, err := h.ledgerUC.GetLedger(c.Context(), id, from, to)
	if err != nil {
		if err == domain.ErrClientNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return c.JSON(out)
}

// AppendLedgerEntry POST /api/clients/:id/ledger
// Solo acepta ADJUSTMENT y RETURN: las ventas entran por /api/invoices y los
// pagos por /api/clients/:id/payments, que mantienen la facturación consistente.
func (h *ClientHandler) AppendLedgerEntry(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AppendLedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Type != entity.EntryTypeADJUSTMENT && in.Type != entity.EntryTypeRETURN {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "type debe ser ADJUSTMENT o RETURN; ventas y pagos usan sus propios endpoints",
		})
	}
	entry, err := h.ledgerUC.AppendEntry(c.Context(), id, ledger.EntryInput{
		Date:        in.Date,
		Type:        in.Type,
		Description: in.Description,
		Debit:       in.Debit,
		Credit:      in.Credit,
		Notes:       in.Notes,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrClientNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryResponse(entry))
}

// RecordPayment POST /api/clients/:id/payments
// Sin target_invoice_id el pago se asigna FIFO a las facturas abiertas del cliente.
func (h *ClientHandler) RecordPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.paymentUC.RecordPayment(c.Context(), id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser mayor que cero"})
		}
		if err == domain.ErrClientNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		if err == domain.ErrInvoiceNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "INVOICE_NOT_FOUND", Message: "la factura destino no existe o es de otro cliente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// parseDateQuery acepta "2006-01-02" o RFC3339; string vacío devuelve nil.
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toLedgerEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	items := make([]dto.LedgerItemResponse, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, dto.LedgerItemResponse{
			StockItemID: it.StockItemID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return &dto.LedgerEntryResponse{
		ID:          e.ID,
		ClientID:    e.ClientID,
		Date:        e.Date,
		Type:        e.Type,
		Description: e.Description,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Balance:     e.Balance,
		InvoiceID:   e.InvoiceID,
		Notes:       e.Notes,
		Items:       items,
		CreatedAt:   e.CreatedAt,
	}
}
