package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados advisory para el tablero.
// Ante errores de storage los bloques degradan a ceros en lugar de fallar.
type DashboardResponse struct {
	StockItemCount     int             `json:"stock_item_count"`
	StockTotalQuantity decimal.Decimal `json:"stock_total_quantity"`
	StockTotalValue    decimal.Decimal `json:"stock_total_value"`
	ClientsWithDebt    int             `json:"clients_with_debt"`
	TotalReceivables   decimal.Decimal `json:"total_receivables"`
	ExpensesThisMonth  decimal.Decimal `json:"expenses_this_month"`
}
