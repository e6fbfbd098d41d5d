package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
// No incluye balance ni total_business_value: esos campos solo los muta el ledger.
type UpdateClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email,omitempty"`
	Address            string          `json:"address,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Balance            decimal.Decimal `json:"balance"`
	TotalBusinessValue decimal.Decimal `json:"total_business_value"`
	CreatedAt          time.Time       `json:"created_at"`
}

// AppendLedgerEntryRequest body para POST /api/clients/:id/ledger.
// Solo tipos ADJUSTMENT y RETURN: las ventas y los pagos entran por
// /api/invoices y /api/clients/:id/payments respectivamente.
type AppendLedgerEntryRequest struct {
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Notes       string          `json:"notes,omitempty"`
}

// LedgerEntryResponse entrada del ledger en respuestas.
type LedgerEntryResponse struct {
	ID          string               `json:"id"`
	ClientID    string               `json:"client_id"`
	Date        time.Time            `json:"date"`
	Type        string               `json:"type"`
	Description string               `json:"description"`
	Debit       decimal.Decimal      `json:"debit"`
	Credit      decimal.Decimal      `json:"credit"`
	Balance     decimal.Decimal      `json:"balance"`
	InvoiceID   string               `json:"invoice_id,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	Items       []LedgerItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// LedgerItemResponse línea de detalle de una entrada.
type LedgerItemResponse struct {
	StockItemID string          `json:"stock_item_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// RecordPaymentRequest body para POST /api/clients/:id/payments.
// Si TargetInvoiceID va vacío el pago se asigna FIFO a las facturas abiertas.
type RecordPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	TargetInvoiceID string          `json:"target_invoice_id,omitempty"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description,omitempty"`
}

// PaymentAllocationResponse cómo quedó distribuido un pago entre facturas.
type PaymentAllocationResponse struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Applied       decimal.Decimal `json:"applied"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Status        string          `json:"status"`
}

// RecordPaymentResponse resultado de registrar un pago.
type RecordPaymentResponse struct {
	ClientID    string                      `json:"client_id"`
	Amount      decimal.Decimal             `json:"amount"`
	NewBalance  decimal.Decimal             `json:"new_balance"`
	Allocations []PaymentAllocationResponse `json:"allocations"`
}
