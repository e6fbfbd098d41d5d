package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del ledger de clientes sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: el ledger es append-only por contrato.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste una entrada del ledger con su snapshot de saldo.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (id, client_id, date, type, description, debit, credit, balance, invoice_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ClientID, entry.Date, entry.Type, entry.Description,
		entry.Debit, entry.Credit, entry.Balance,
		nullIfEmpty(entry.InvoiceID), nullIfEmpty(entry.Notes), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de detalle de una entrada.
func (r *LedgerRepo) CreateItem(item *entity.LedgerItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_items (id, entry_id, stock_item_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.EntryID, nullIfEmpty(item.StockItemID), item.Description,
		item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert ledger item: %w", err)
	}
	return nil
}

// ListByClient devuelve las entradas del cliente más recientes primero, con sus
// items resueltos en una segunda consulta (dos queries, sin N+1).
func (r *LedgerRepo) ListByClient(clientID string, from, to *time.Time) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, client_id, date, type, description, debit, credit, balance, invoice_id, notes, created_at
		FROM ledger_entries
		WHERE client_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	byID := map[string]*entity.LedgerEntry{}
	for rows.Next() {
		var e entity.LedgerEntry
		var invoiceID, notes *string
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Date, &e.Type, &e.Description,
			&e.Debit, &e.Credit, &e.Balance, &invoiceID, &notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.InvoiceID = derefStr(invoiceID)
		e.Notes = derefStr(notes)
		list = append(list, &e)
		byID[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	itemRows, err := r.q.Query(context.Background(), `
		SELECT id, entry_id, stock_item_id, description, quantity, unit_price
		FROM ledger_items WHERE entry_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list ledger items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item entity.LedgerItem
		var stockItemID *string
		if err := itemRows.Scan(&item.ID, &item.EntryID, &stockItemID, &item.Description,
			&item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan ledger item: %w", err)
		}
		item.StockItemID = derefStr(stockItemID)
		if entry, ok := byID[item.EntryID]; ok {
			entry.Items = append(entry.Items, &item)
		}
	}
	return list, itemRows.Err()
}
