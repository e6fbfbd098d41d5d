package billing_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayorista-api/internal/application/billing"
	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/application/stock"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: el store completo que la facturación toca en una tx
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items    map[string]*entity.StockItem
	movs     []*entity.StockMovement
	clients  map[string]*entity.Client
	entries  []*entity.LedgerEntry
	ledItems []*entity.LedgerItem
	invoices map[string]*entity.Invoice
	invItems []*entity.InvoiceItem

	failInvoiceCreate error // simula error de BD al insertar la cabecera
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[string]*entity.StockItem{},
		clients:  map[string]*entity.Client{},
		invoices: map[string]*entity.Invoice{},
	}
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, item := range s.items {
		cp := *item
		snap.items[id] = &cp
	}
	snap.movs = append([]*entity.StockMovement(nil), s.movs...)
	for id, c := range s.clients {
		cp := *c
		snap.clients[id] = &cp
	}
	snap.entries = append([]*entity.LedgerEntry(nil), s.entries...)
	snap.ledItems = append([]*entity.LedgerItem(nil), s.ledItems...)
	for id, inv := range s.invoices {
		cp := *inv
		snap.invoices[id] = &cp
	}
	snap.invItems = append([]*entity.InvoiceItem(nil), s.invItems...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.items = snap.items
	s.movs = snap.movs
	s.clients = snap.clients
	s.entries = snap.entries
	s.ledItems = snap.ledItems
	s.invoices = snap.invoices
	s.invItems = snap.invItems
}

// ── StockItemRepository ───────────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.StockItem) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.StockItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *memItemRepo) GetBySKU(sku string) (*entity.StockItem, error) {
	for _, item := range r.s.items {
		if item.SKU == sku {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) List(limit, offset int) ([]*entity.StockItem, error) { return nil, nil }

func (r *memItemRepo) Update(item *entity.StockItem) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) SoftDelete(id string, at time.Time) error {
	if item, ok := r.s.items[id]; ok {
		item.DeletedAt = &at
	}
	return nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.StockItem, error) { return r.GetByID(id) }

func (r *memItemRepo) UpdateQuantity(id string, quantity decimal.Decimal, at time.Time) error {
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.CurrentQuantity = quantity
	item.UpdatedAt = at
	return nil
}

func (r *memItemRepo) UpdatePurchasePrice(id string, price decimal.Decimal, at time.Time) error {
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.PurchasePrice = price
	return nil
}

func (r *memItemRepo) ListLowStock() ([]*entity.StockItem, error) { return nil, nil }

// ── StockMovementRepository ───────────────────────────────────────────────────

type memMovRepo struct{ s *memStore }

func (r *memMovRepo) Create(mov *entity.StockMovement) error {
	cp := *mov
	r.s.movs = append(r.s.movs, &cp)
	return nil
}

func (r *memMovRepo) ListByItem(stockItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range r.s.movs {
		if mov.StockItemID == stockItemID {
			out = append(out, mov)
		}
	}
	return out, nil
}

// ── ClientRepository ──────────────────────────────────────────────────────────

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByPhone(phone string) (*entity.Client, error) { return nil, nil }

func (r *memClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }

func (r *memClientRepo) Update(c *entity.Client) error { return nil }

func (r *memClientRepo) SoftDelete(id string, at time.Time) error {
	if c, ok := r.s.clients[id]; ok {
		c.DeletedAt = &at
	}
	return nil
}

func (r *memClientRepo) GetForUpdate(id string) (*entity.Client, error) { return r.GetByID(id) }

func (r *memClientRepo) UpdateBalances(id string, balance, totalBusinessValue decimal.Decimal, at time.Time) error {
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.Balance = balance
	c.TotalBusinessValue = totalBusinessValue
	c.UpdatedAt = at
	return nil
}

// ── LedgerRepository ──────────────────────────────────────────────────────────

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(e *entity.LedgerEntry) error {
	cp := *e
	cp.Items = nil
	r.s.entries = append(r.s.entries, &cp)
	return nil
}

func (r *memLedgerRepo) CreateItem(item *entity.LedgerItem) error {
	cp := *item
	r.s.ledItems = append(r.s.ledItems, &cp)
	return nil
}

func (r *memLedgerRepo) ListByClient(clientID string, from, to *time.Time) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ── InvoiceRepository ─────────────────────────────────────────────────────────

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	if r.s.failInvoiceCreate != nil {
		return r.s.failInvoiceCreate
	}
	cp := *inv
	cp.Items = nil
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.s.invItems = append(r.s.invItems, &cp)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) { return r.GetByID(id) }

func (r *memInvoiceRepo) ListOpenByClientForUpdate(clientID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID && inv.Open() {
			cp := *inv
			out = append(out, &cp)
		}
	}
	// created_at ASC: la deuda más vieja primero
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memInvoiceRepo) UpdatePayment(inv *entity.Invoice) error {
	existing, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	existing.AmountPaid = inv.AmountPaid
	existing.AmountDue = inv.AmountDue
	existing.Status = inv.Status
	existing.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *memInvoiceRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, item := range r.s.invItems {
		if item.InvoiceID == invoiceID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── TxRunners ─────────────────────────────────────────────────────────────────

// memTxRunner implementa los tres runners sobre el mismo store, con rollback
// por snapshot: si fn falla, el estado completo vuelve al de antes.
type memTxRunner struct{ s *memStore }

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snap := tx.s.snapshot()
	if err := fn(&memItemRepo{tx.s}, &memMovRepo{tx.s}); err != nil {
		tx.s.restore(snap)
		return err
	}
	return nil
}

func (tx *memTxRunner) RunLedger(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	snap := tx.s.snapshot()
	if err := fn(&memClientRepo{tx.s}, &memLedgerRepo{tx.s}); err != nil {
		tx.s.restore(snap)
		return err
	}
	return nil
}

func (tx *memTxRunner) RunBilling(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	clientRepo repository.ClientRepository,
	ledgerRepo repository.LedgerRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	snap := tx.s.snapshot()
	if err := fn(&memItemRepo{tx.s}, &memMovRepo{tx.s}, &memClientRepo{tx.s}, &memLedgerRepo{tx.s}, &memInvoiceRepo{tx.s}); err != nil {
		tx.s.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: cliente + dos artículos + casos de uso reales compuestos
// ──────────────────────────────────────────────────────────────────────────────

type billingFixture struct {
	store     *memStore
	createUC  *billing.CreateInvoiceUseCase
	paymentUC *billing.RecordPaymentUseCase
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupBilling(t *testing.T) *billingFixture {
	t.Helper()
	store := newMemStore()
	txRunner := &memTxRunner{s: store}
	itemRepo := &memItemRepo{store}
	movRepo := &memMovRepo{store}
	clientRepo := &memClientRepo{store}
	ledgerRepo := &memLedgerRepo{store}
	invoiceRepo := &memInvoiceRepo{store}

	require.NoError(t, clientRepo.Create(&entity.Client{
		ID:                 "cli-1",
		Name:               "Tienda La Esquina",
		Phone:              "3001234567",
		Balance:            decimal.Zero,
		TotalBusinessValue: decimal.Zero,
	}))
	require.NoError(t, itemRepo.Create(&entity.StockItem{
		ID: "item-1", SKU: "ARR-500", Name: "Arroz 500g",
		WholesalePrice: dec("100"), RetailPrice: dec("120"),
		CurrentQuantity: dec("50"), MinStockLevel: dec("5"),
	}))
	require.NoError(t, itemRepo.Create(&entity.StockItem{
		ID: "item-2", SKU: "ACE-1L", Name: "Aceite 1L",
		WholesalePrice: dec("200"), RetailPrice: dec("250"),
		CurrentQuantity: dec("10"), MinStockLevel: dec("2"),
	}))

	stockUC := stock.NewAdjustQuantityUseCase(txRunner, itemRepo, movRepo)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, ledgerRepo)

	return &billingFixture{
		store:     store,
		createUC:  billing.NewCreateInvoiceUseCase(txRunner, stockUC, ledgerUC, clientRepo, itemRepo, invoiceRepo),
		paymentUC: billing.NewRecordPaymentUseCase(txRunner, ledgerUC, clientRepo),
	}
}
