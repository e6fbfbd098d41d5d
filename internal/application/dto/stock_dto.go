package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/stock-items.
type CreateStockItemRequest struct {
	CategoryID      string          `json:"category_id"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	MinStockLevel   decimal.Decimal `json:"min_stock_level"`
	Unit            string          `json:"unit"`
	ItemsInPack     int             `json:"items_in_pack,omitempty"`
}

// UpdateStockItemRequest body para PUT /api/stock-items/:id.
// No incluye cantidad: toda mutación de cantidad pasa por un movimiento.
type UpdateStockItemRequest struct {
	CategoryID     string          `json:"category_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
	Unit           string          `json:"unit"`
	ItemsInPack    int             `json:"items_in_pack,omitempty"`
}

// StockItemResponse artículo en respuestas.
type StockItemResponse struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"category_id"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinStockLevel   decimal.Decimal `json:"min_stock_level"`
	Unit            string          `json:"unit"`
	ItemsInPack     int             `json:"items_in_pack,omitempty"`
}

// AdjustQuantityRequest body para POST /api/stock-items/:id/movements.
// Type IN suma Quantity, OUT resta, ADJUSTMENT fija la cantidad absoluta.
// UnitCost opcional en IN: recalcula el precio de compra promedio ponderado.
type AdjustQuantityRequest struct {
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Reason    string           `json:"reason"`
	Reference string           `json:"reference,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// StockMovementResponse movimiento en respuestas.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	Reference   string          `json:"reference,omitempty"`
	PerformedBy string          `json:"performed_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LowStockAlertResponse artículo bajo el umbral con su déficit crudo.
type LowStockAlertResponse struct {
	Item    StockItemResponse `json:"item"`
	Deficit decimal.Decimal   `json:"deficit"`
}
