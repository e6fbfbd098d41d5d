package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockValuation valoración del inventario activo a precio de compra.
type StockValuation struct {
	ItemCount     int
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
}

// ReceivablesSummary totales de cartera (saldos de clientes).
type ReceivablesSummary struct {
	ClientCount  int
	TotalBalance decimal.Decimal
}

// ReportsRepository consultas agregadas de solo lectura (reportería).
// Son advisory: el caller puede degradar a valores vacíos ante errores de storage.
type ReportsRepository interface {
	StockValuation() (*StockValuation, error)
	Receivables() (*ReceivablesSummary, error)
	ExpensesTotal(from, to time.Time) (decimal.Decimal, error)
}
