package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de entrada del ledger de clientes.
const (
	EntryTypeSALE       = "SALE"       // venta: sube el saldo (débito)
	EntryTypePAYMENT    = "PAYMENT"    // pago recibido: baja el saldo (crédito)
	EntryTypeADJUSTMENT = "ADJUSTMENT" // corrección manual
	EntryTypeRETURN     = "RETURN"     // devolución de mercancía
)

// LedgerEntry registro inmutable de un evento que afecta el saldo de un cliente.
// Invariante: Balance = saldo_anterior + Debit - Credit, en orden de inserción.
// No existe API de edición ni borrado: las correcciones son entradas
// compensatorias ADJUSTMENT o RETURN.
type LedgerEntry struct {
	ID          string
	ClientID    string
	Date        time.Time
	Type        string
	Description string
	Debit       decimal.Decimal // >= 0; sube el saldo
	Credit      decimal.Decimal // >= 0; baja el saldo
	Balance     decimal.Decimal // saldo resultante tras aplicar esta entrada
	InvoiceID   string          // opcional, enlace a la factura origen
	Notes       string
	Items       []*LedgerItem
	CreatedAt   time.Time
}

// LedgerItem línea de detalle opcional de una entrada del ledger (ej: artículos de la venta).
type LedgerItem struct {
	ID          string
	EntryID     string
	StockItemID string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}
