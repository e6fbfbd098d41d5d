package repository

import (
	"time"

	"github.com/jhoicas/mayorista-api/internal/domain/entity"
)

// LedgerRepository puerto para el ledger de clientes (append-only).
// No existe Update ni Delete de entradas: las correcciones son entradas compensatorias.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	CreateItem(item *entity.LedgerItem) error
	// ListByClient devuelve las entradas del cliente más recientes primero
	// (date DESC, created_at DESC para desempatar el mismo día), con sus items resueltos.
	// from y to acotan opcionalmente por fecha de negocio.
	ListByClient(clientID string, from, to *time.Time) ([]*entity.LedgerEntry, error)
}
