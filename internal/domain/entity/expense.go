package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory categoría de gastos operativos.
type ExpenseCategory struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Expense gasto operativo del negocio.
type Expense struct {
	ID          string
	CategoryID  string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	PerformedBy string
	CreatedAt   time.Time
}
