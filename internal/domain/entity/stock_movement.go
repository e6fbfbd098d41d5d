package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada (suma Quantity)
	MovementTypeOUT        = "OUT"        // salida (resta Quantity; falla si queda negativo)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste absoluto (fija la cantidad en Quantity)
)

// StockMovement registro inmutable de un cambio de cantidad (append-only).
// Reference enlaza opcionalmente con el documento que originó el cambio (ej: ID de factura).
type StockMovement struct {
	ID          string
	StockItemID string
	Type        string
	Quantity    decimal.Decimal
	Reason      string
	Reference   string
	PerformedBy string
	CreatedAt   time.Time
}
