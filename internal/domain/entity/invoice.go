package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. PAID es terminal: no existe operación de "des-pago".
const (
	InvoiceStatusUNPAID  = "UNPAID"  // sin pagos aplicados
	InvoiceStatusPARTIAL = "PARTIAL" // pago parcial, queda saldo
	InvoiceStatusPAID    = "PAID"    // saldo en cero
)

// Invoice representa la cabecera de una factura de venta.
// Total = Subtotal - Discount + Tax; AmountDue = Total - AmountPaid.
// AmountPaid es monótonamente no decreciente durante la vida de la factura.
type Invoice struct {
	ID         string
	Number     string // único
	ClientID   string
	Date       time.Time
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	AmountDue  decimal.Decimal
	Status     string
	Notes      string
	Items      []*InvoiceItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem línea de detalle de una factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	StockItemID string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// DeriveInvoiceStatus deriva el estado como función pura de Total y AmountPaid:
// AmountDue <= 0 -> PAID; AmountPaid > 0 -> PARTIAL; si no -> UNPAID.
func DeriveInvoiceStatus(total, amountPaid decimal.Decimal) string {
	if total.Sub(amountPaid).LessThanOrEqual(decimal.Zero) {
		return InvoiceStatusPAID
	}
	if amountPaid.GreaterThan(decimal.Zero) {
		return InvoiceStatusPARTIAL
	}
	return InvoiceStatusUNPAID
}

// Open indica si la factura admite más pagos (UNPAID o PARTIAL).
func (i *Invoice) Open() bool {
	return i.Status == InvoiceStatusUNPAID || i.Status == InvoiceStatusPARTIAL
}
