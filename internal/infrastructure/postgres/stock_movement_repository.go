package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los movimientos son append-only: no hay Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(mov *entity.StockMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, stock_item_id, type, quantity, reason, reference, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.StockItemID, mov.Type, mov.Quantity, mov.Reason,
		nullIfEmpty(mov.Reference), nullIfEmpty(mov.PerformedBy), mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un artículo, más recientes primero.
func (r *StockMovementRepo) ListByItem(stockItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stock_item_id, type, quantity, reason, reference, performed_by, created_at
		FROM stock_movements
		WHERE stock_item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, stockItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var mov entity.StockMovement
		var reference, performedBy *string
		if err := rows.Scan(&mov.ID, &mov.StockItemID, &mov.Type, &mov.Quantity, &mov.Reason,
			&reference, &performedBy, &mov.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		mov.Reference = derefStr(reference)
		mov.PerformedBy = derefStr(performedBy)
		list = append(list, &mov)
	}
	return list, rows.Err()
}
