package ledger_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memClientRepo struct {
	clients map[string]*entity.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: map[string]*entity.Client{}}
}

func (r *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByPhone(phone string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Phone == phone && c.DeletedAt == nil {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.DeletedAt == nil {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memClientRepo) Update(c *entity.Client) error {
	// Update de perfil: nunca toca balance ni total_business_value
	existing, ok := r.clients[c.ID]
	if !ok {
		return domain.ErrClientNotFound
	}
	cp := *c
	cp.Balance = existing.Balance
	cp.TotalBusinessValue = existing.TotalBusinessValue
	r.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) SoftDelete(id string, at time.Time) error {
	if c, ok := r.clients[id]; ok {
		c.DeletedAt = &at
	}
	return nil
}

func (r *memClientRepo) GetForUpdate(id string) (*entity.Client, error) {
	return r.GetByID(id)
}

func (r *memClientRepo) UpdateBalances(id string, balance, totalBusinessValue decimal.Decimal, at time.Time) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.Balance = balance
	c.TotalBusinessValue = totalBusinessValue
	c.UpdatedAt = at
	return nil
}

func (r *memClientRepo) snapshot() map[string]entity.Client {
	snap := make(map[string]entity.Client, len(r.clients))
	for id, c := range r.clients {
		snap[id] = *c
	}
	return snap
}

func (r *memClientRepo) restore(snap map[string]entity.Client) {
	r.clients = make(map[string]*entity.Client, len(snap))
	for id, c := range snap {
		cp := c
		r.clients[id] = &cp
	}
}

type memLedgerRepo struct {
	entries    []*entity.LedgerEntry
	items      []*entity.LedgerItem
	failCreate error // simula error de BD al insertar la entrada
}

func (r *memLedgerRepo) Create(e *entity.LedgerEntry) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *e
	cp.Items = nil
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memLedgerRepo) CreateItem(item *entity.LedgerItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *memLedgerRepo) ListByClient(clientID string, from, to *time.Time) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if e.ClientID != clientID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		cp := *e
		for _, item := range r.items {
			if item.EntryID == e.ID {
				icp := *item
				cp.Items = append(cp.Items, &icp)
			}
		}
		out = append(out, &cp)
	}
	// date DESC, created_at DESC para desempatar
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// memTxRunner simula Commit/Rollback con snapshot del estado.
type memTxRunner struct {
	clientRepo *memClientRepo
	ledgerRepo *memLedgerRepo
}

func (tx *memTxRunner) RunLedger(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	clientSnap := tx.clientRepo.snapshot()
	entriesSnap := make([]*entity.LedgerEntry, len(tx.ledgerRepo.entries))
	copy(entriesSnap, tx.ledgerRepo.entries)
	itemsSnap := make([]*entity.LedgerItem, len(tx.ledgerRepo.items))
	copy(itemsSnap, tx.ledgerRepo.items)

	if err := fn(tx.clientRepo, tx.ledgerRepo); err != nil {
		tx.clientRepo.restore(clientSnap)
		tx.ledgerRepo.entries = entriesSnap
		tx.ledgerRepo.items = itemsSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupLedger(t *testing.T) (*ledger.LedgerUseCase, *memClientRepo, *memLedgerRepo) {
	t.Helper()
	clientRepo := newMemClientRepo()
	ledgerRepo := &memLedgerRepo{}
	require.NoError(t, clientRepo.Create(&entity.Client{
		ID:                 "cli-1",
		Name:               "Tienda La Esquina",
		Phone:              "3001234567",
		Balance:            decimal.Zero,
		TotalBusinessValue: decimal.Zero,
	}))
	uc := ledger.NewLedgerUseCase(&memTxRunner{clientRepo: clientRepo, ledgerRepo: ledgerRepo}, ledgerRepo)
	return uc, clientRepo, ledgerRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AppendEntry
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1 (invariante de saldo): una secuencia de ventas y pagos mantiene
// balance == Σ(debit - credit) y cada entrada guarda su snapshot correcto.
func TestAppendEntry_SaldoCorridoConsistente(t *testing.T) {
	uc, clientRepo, _ := setupLedger(t)
	ctx := context.Background()

	e1, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Description: "Venta 1", Debit: dec("500"),
	})
	require.NoError(t, err)
	assert.True(t, dec("500").Equal(e1.Balance), "tras la venta el saldo debe ser 500")

	e2, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypePAYMENT, Description: "Abono", Credit: dec("200"),
	})
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(e2.Balance), "tras el abono el saldo debe ser 300")

	e3, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Description: "Venta 2", Debit: dec("150"),
	})
	require.NoError(t, err)
	assert.True(t, dec("450").Equal(e3.Balance), "tras la segunda venta el saldo debe ser 450")

	client, _ := clientRepo.GetByID("cli-1")
	assert.True(t, dec("450").Equal(client.Balance),
		"clients.balance debe coincidir con el snapshot de la última entrada")
}

// Caso 1b: un pago mayor a la deuda deja saldo negativo (saldo a favor del cliente).
func TestAppendEntry_SaldoNegativoEsValido(t *testing.T) {
	uc, clientRepo, _ := setupLedger(t)
	ctx := context.Background()

	_, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Description: "Venta", Debit: dec("100"),
	})
	require.NoError(t, err)
	entry, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypePAYMENT, Description: "Pago grande", Credit: dec("300"),
	})
	require.NoError(t, err)
	assert.True(t, dec("-200").Equal(entry.Balance),
		"el saldo a favor se representa como balance negativo, quedó %s", entry.Balance)

	client, _ := clientRepo.GetByID("cli-1")
	assert.True(t, dec("-200").Equal(client.Balance))
}

// Caso 2 (total de negocio): solo las entradas SALE acumulan total_business_value;
// pagos, ajustes y devoluciones no lo tocan.
func TestAppendEntry_TotalNegocioSoloCreceConVentas(t *testing.T) {
	uc, clientRepo, _ := setupLedger(t)
	ctx := context.Background()

	_, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Description: "Venta", Debit: dec("500"),
	})
	require.NoError(t, err)
	_, err = uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypePAYMENT, Description: "Pago", Credit: dec("500"),
	})
	require.NoError(t, err)
	_, err = uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeRETURN, Description: "Devolución", Credit: dec("50"),
	})
	require.NoError(t, err)
	_, err = uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeADJUSTMENT, Description: "Ajuste", Debit: dec("50"),
	})
	require.NoError(t, err)

	client, _ := clientRepo.GetByID("cli-1")
	assert.True(t, dec("500").Equal(client.TotalBusinessValue),
		"solo la venta de 500 debe acumular en el total de negocio, quedó %s", client.TotalBusinessValue)
}

// Caso 3: cliente inexistente o borrado → ErrClientNotFound sin insertar nada.
func TestAppendEntry_ClienteInexistente(t *testing.T) {
	uc, clientRepo, ledgerRepo := setupLedger(t)
	ctx := context.Background()

	_, err := uc.AppendEntry(ctx, "no-existe", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Debit: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	require.NoError(t, clientRepo.SoftDelete("cli-1", time.Now()))
	_, err = uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Debit: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound, "un cliente borrado no admite entradas")
	assert.Empty(t, ledgerRepo.entries, "no debe quedar ninguna entrada insertada")
}

// Caso 4: tipo inválido y montos negativos se rechazan antes de la tx.
func TestAppendEntry_EntradaInvalida(t *testing.T) {
	uc, _, ledgerRepo := setupLedger(t)
	ctx := context.Background()

	_, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{Type: "PURCHASE", Debit: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido debe rechazarse")

	_, err = uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Debit: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "débito negativo debe rechazarse")

	_, err = uc.AppendEntry(ctx, "", ledger.EntryInput{Type: entity.EntryTypeSALE, Debit: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "clientID vacío debe rechazarse")
	assert.Empty(t, ledgerRepo.entries)
}

// Caso 5 (atomicidad): si la inserción de la entrada falla, el saldo del
// cliente no cambia (rollback completo).
func TestAppendEntry_RollbackNoTocaSaldo(t *testing.T) {
	uc, clientRepo, ledgerRepo := setupLedger(t)
	ledgerRepo.failCreate = errors.New("error de BD simulado")

	_, err := uc.AppendEntry(context.Background(), "cli-1", ledger.EntryInput{
		Type: entity.EntryTypeSALE, Description: "Venta", Debit: dec("500"),
	})
	require.Error(t, err)

	client, _ := clientRepo.GetByID("cli-1")
	assert.True(t, client.Balance.IsZero(),
		"el saldo debe seguir en cero tras el rollback, quedó %s", client.Balance)
	assert.True(t, client.TotalBusinessValue.IsZero())
	assert.Empty(t, ledgerRepo.entries)
}

// Caso 6: la fecha de negocio vacía se rellena con "ahora"; una fecha explícita
// se respeta (pagos con fecha retroactiva).
func TestAppendEntry_FechaExplicitaSeRespeta(t *testing.T) {
	uc, _, _ := setupLedger(t)
	ayer := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

	entry, err := uc.AppendEntry(context.Background(), "cli-1", ledger.EntryInput{
		Type: entity.EntryTypePAYMENT, Description: "Pago de ayer", Credit: dec("10"), Date: ayer,
	})
	require.NoError(t, err)
	assert.True(t, entry.Date.Equal(ayer), "la fecha de negocio explícita debe conservarse")

	entry2, err := uc.AppendEntry(context.Background(), "cli-1", ledger.EntryInput{
		Type: entity.EntryTypePAYMENT, Description: "Pago de hoy", Credit: dec("10"),
	})
	require.NoError(t, err)
	assert.False(t, entry2.Date.IsZero(), "sin fecha explícita debe asignarse el momento actual")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetLedger
// ──────────────────────────────────────────────────────────────────────────────

// El historial sale más reciente primero y el filtro de fechas acota por fecha
// de negocio.
func TestGetLedger_OrdenYFiltroDeFechas(t *testing.T) {
	uc, _, _ := setupLedger(t)
	ctx := context.Background()

	d1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	for _, c := range []struct {
		date time.Time
		desc string
	}{{d1, "vieja"}, {d2, "media"}, {d3, "nueva"}} {
		_, err := uc.AppendEntry(ctx, "cli-1", ledger.EntryInput{
			Type: entity.EntryTypeSALE, Description: c.desc, Debit: dec("10"), Date: c.date,
		})
		require.NoError(t, err)
	}

	all, err := uc.GetLedger(ctx, "cli-1", nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "nueva", all[0].Description, "la entrada más reciente va primero")
	assert.Equal(t, "vieja", all[2].Description)

	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	filtered, err := uc.GetLedger(ctx, "cli-1", &from, &to)
	require.NoError(t, err)
	require.Len(t, filtered, 1, "solo la entrada del 15 cae en el rango")
	assert.Equal(t, "media", filtered[0].Description)
}
