package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente del negocio mayorista.
// Balance es el saldo corrido: positivo = el cliente debe, negativo = saldo a favor.
// Balance y TotalBusinessValue solo se mutan vía entradas del ledger, nunca por edición directa.
type Client struct {
	ID                 string
	Name               string
	Phone              string // único
	Email              string
	Address            string
	Notes              string
	Balance            decimal.Decimal
	TotalBusinessValue decimal.Decimal // acumulado de ventas; solo crece con entradas SALE
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// Active indica si el cliente no está borrado lógicamente.
func (c *Client) Active() bool {
	return c.DeletedAt == nil
}
