package repository

import (
	"time"

	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockItemRepository define el puerto de persistencia para artículos de inventario.
// UpdateQuantity se usa dentro de transacciones junto con el registro del movimiento.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetBySKU(sku string) (*entity.StockItem, error)
	List(limit, offset int) ([]*entity.StockItem, error)
	Update(item *entity.StockItem) error
	SoftDelete(id string, at time.Time) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.StockItem, error)
	UpdateQuantity(id string, quantity decimal.Decimal, at time.Time) error
	UpdatePurchasePrice(id string, price decimal.Decimal, at time.Time) error
	// ListLowStock devuelve artículos activos con current_quantity <= min_stock_level.
	ListLowStock() ([]*entity.StockItem, error)
}
