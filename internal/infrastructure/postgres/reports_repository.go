package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo consultas agregadas de solo lectura para el tablero.
type ReportsRepo struct {
	q Querier
}

// NewReportsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// StockValuation valora el inventario activo a precio de compra.
func (r *ReportsRepo) StockValuation() (*repository.StockValuation, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(current_quantity), 0),
		       COALESCE(SUM(current_quantity * purchase_price), 0)
		FROM stock_items WHERE deleted_at IS NULL`
	var v repository.StockValuation
	err := r.q.QueryRow(context.Background(), query).Scan(
		&v.ItemCount, &v.TotalQuantity, &v.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	return &v, nil
}

// Receivables resume la cartera: cuántos clientes deben y cuánto suman sus saldos.
func (r *ReportsRepo) Receivables() (*repository.ReceivablesSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(balance), 0)
		FROM clients WHERE deleted_at IS NULL AND balance > 0`
	var s repository.ReceivablesSummary
	err := r.q.QueryRow(context.Background(), query).Scan(&s.ClientCount, &s.TotalBalance)
	if err != nil {
		return nil, fmt.Errorf("receivables summary: %w", err)
	}
	return &s, nil
}

// ExpensesTotal suma los gastos en el rango [from, to].
func (r *ReportsRepo) ExpensesTotal(from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date >= $1 AND date <= $2`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("expenses total: %w", err)
	}
	return total, nil
}
