package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, category_id, sku, barcode, name, description,
	purchase_price, wholesale_price, retail_price, current_quantity, min_stock_level,
	unit, items_in_pack, created_at, updated_at, deleted_at`

// StockItemRepo implementación de StockItemRepository (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, category_id, sku, barcode, name, description,
			purchase_price, wholesale_price, retail_price, current_quantity, min_stock_level,
			unit, items_in_pack, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CategoryID, item.SKU, nullIfEmpty(item.Barcode), item.Name, item.Description,
		item.PurchasePrice, item.WholesalePrice, item.RetailPrice, item.CurrentQuantity, item.MinStockLevel,
		item.Unit, item.ItemsInPack, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var item entity.StockItem
	var barcode *string
	err := row.Scan(
		&item.ID, &item.CategoryID, &item.SKU, &barcode, &item.Name, &item.Description,
		&item.PurchasePrice, &item.WholesalePrice, &item.RetailPrice, &item.CurrentQuantity, &item.MinStockLevel,
		&item.Unit, &item.ItemsInPack, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Barcode = derefStr(barcode)
	return &item, nil
}

// GetByID obtiene un artículo por ID (incluye borrados; el caller decide).
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetBySKU obtiene un artículo activo por SKU.
func (r *StockItemRepo) GetBySKU(sku string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE sku = $1 AND deleted_at IS NULL`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item by sku: %w", err)
	}
	return item, nil
}

// List lista artículos activos ordenados por nombre, con paginación.
func (r *StockItemRepo) List(limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items WHERE deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update actualiza los datos del artículo. No toca current_quantity ni
// purchase_price: esos campos tienen sus propias rutas transaccionales.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET category_id = $2, barcode = $3, name = $4, description = $5,
		    wholesale_price = $6, retail_price = $7, min_stock_level = $8,
		    unit = $9, items_in_pack = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CategoryID, nullIfEmpty(item.Barcode), item.Name, item.Description,
		item.WholesalePrice, item.RetailPrice, item.MinStockLevel,
		item.Unit, item.ItemsInPack, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// SoftDelete marca el artículo como borrado (deleted_at).
func (r *StockItemRepo) SoftDelete(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_items SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete stock item: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el artículo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return item, nil
}

// UpdateQuantity fija la cantidad (solo dentro de la transacción de un movimiento).
func (r *StockItemRepo) UpdateQuantity(id string, quantity decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_items SET current_quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, at)
	if err != nil {
		return fmt.Errorf("update stock item quantity: %w", err)
	}
	return nil
}

// UpdatePurchasePrice fija el precio de compra (promedio ponderado en entradas IN con costo).
func (r *StockItemRepo) UpdatePurchasePrice(id string, price decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_items SET purchase_price = $2, updated_at = $3 WHERE id = $1`,
		id, price, at)
	if err != nil {
		return fmt.Errorf("update stock item purchase price: %w", err)
	}
	return nil
}

// ListLowStock devuelve artículos activos con cantidad en o bajo el umbral.
func (r *StockItemRepo) ListLowStock() ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE deleted_at IS NULL AND current_quantity <= min_stock_level
		ORDER BY (min_stock_level - current_quantity) DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
