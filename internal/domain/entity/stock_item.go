package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un artículo del inventario con sus tres precios.
// CurrentQuantity nunca es negativa; toda mutación pasa por un StockMovement.
// El borrado es lógico (DeletedAt) para no romper referencias de facturas y ledger.
type StockItem struct {
	ID              string
	CategoryID      string
	SKU             string // código único
	Barcode         string // opcional, único si existe
	Name            string
	Description     string
	PurchasePrice   decimal.Decimal // precio de compra (promedio ponderado en entradas con costo)
	WholesalePrice  decimal.Decimal // precio mayorista / con descuento
	RetailPrice     decimal.Decimal // precio de venta al detal
	CurrentQuantity decimal.Decimal
	MinStockLevel   decimal.Decimal // umbral de alerta de stock bajo
	Unit            string          // unidad de medida (und, kg, caja...)
	ItemsInPack     int             // unidades por empaque (0 = no aplica)
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// Active indica si el artículo no está borrado lógicamente.
func (s *StockItem) Active() bool {
	return s.DeletedAt == nil
}

// LowStockAlert artículo con stock en o bajo el umbral, con el déficit calculado.
// Deficit = MinStockLevel - CurrentQuantity (se expone crudo, el consumidor decide cómo mostrarlo).
type LowStockAlert struct {
	Item    *StockItem
	Deficit decimal.Decimal
}
