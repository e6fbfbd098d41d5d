package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	ClientID   string               `json:"client_id"`
	Number     string               `json:"number,omitempty"` // opcional; si va vacío se genera
	Date       time.Time            `json:"date,omitempty"`
	Items      []InvoiceItemRequest `json:"items"`
	Discount   decimal.Decimal      `json:"discount"`
	Tax        decimal.Decimal      `json:"tax"`
	AmountPaid decimal.Decimal      `json:"amount_paid"`
	Notes      string               `json:"notes,omitempty"`
}

// InvoiceItemRequest línea de factura (artículo, cantidad, precio unitario).
// Si UnitPrice va en cero se usa el precio mayorista del artículo.
type InvoiceItemRequest struct {
	StockItemID string          `json:"stock_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	ClientID   string                `json:"client_id"`
	ClientName string                `json:"client_name,omitempty"`
	Date       time.Time             `json:"date"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	Discount   decimal.Decimal       `json:"discount"`
	Tax        decimal.Decimal       `json:"tax"`
	Total      decimal.Decimal       `json:"total"`
	AmountPaid decimal.Decimal       `json:"amount_paid"`
	AmountDue  decimal.Decimal       `json:"amount_due"`
	Status     string                `json:"status"`
	Notes      string                `json:"notes,omitempty"`
	Items      []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea de detalle en la respuesta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
