package repository

import "github.com/jhoicas/mayorista-api/internal/domain/entity"

// StockMovementRepository puerto para el historial de movimientos (append-only).
// No hay Update ni Delete: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByItem(stockItemID string, limit, offset int) ([]*entity.StockMovement, error)
}
