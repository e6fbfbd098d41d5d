package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// LedgerUseCase mantiene el saldo corrido de cada cliente y su historial
// append-only de eventos (venta, pago, ajuste, devolución).
// El saldo se mantiene incremental en clients.balance para lecturas O(1);
// el invariante "suma de (debit - credit) de todas las entradas == saldo"
// es la propiedad de correctitud principal.
type LedgerUseCase struct {
	txRunner   TxRunner
	ledgerRepo repository.LedgerRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, ledgerRepo repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, ledgerRepo: ledgerRepo}
}

// EntryInput entrada para AppendEntry.
type EntryInput struct {
	Date        time.Time
	Type        string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	InvoiceID   string
	Notes       string
	Items       []*entity.LedgerItem
}

func validEntryType(t string) bool {
	switch t {
	case entity.EntryTypeSALE, entity.EntryTypePAYMENT, entity.EntryTypeADJUSTMENT, entity.EntryTypeRETURN:
		return true
	}
	return false
}

// AppendEntry registra un evento que afecta el saldo del cliente, dentro de una
// sola transacción. Si el cliente no existe falla con ErrClientNotFound y no
// inserta nada.
func (uc *LedgerUseCase) AppendEntry(ctx context.Context, clientID string, input EntryInput) (*entity.LedgerEntry, error) {
	if clientID == "" || !validEntryType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Debit.LessThan(decimal.Zero) || input.Credit.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.LedgerEntry
	err := uc.txRunner.RunLedger(ctx, func(
		clientRepo repository.ClientRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		var err error
		entry, err = uc.AppendEntryInTx(clientRepo, ledgerRepo, clientID, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AppendEntryInTx ejecuta los seis pasos usando repositorios del caller (misma
// transacción). Lo usan facturación y pagos para que la entrada del ledger caiga
// en el mismo rollback que la factura o la asignación del pago.
//
// Pasos: (a) leer saldo con bloqueo de fila, (b) newBalance = saldo + debit - credit,
// (c) insertar la entrada con el snapshot del saldo, (d) insertar items,
// (e) escribir clients.balance, (f) si es SALE sumar debit a total_business_value.
func (uc *LedgerUseCase) AppendEntryInTx(
	clientRepo repository.ClientRepository,
	ledgerRepo repository.LedgerRepository,
	clientID string,
	input EntryInput,
	now time.Time,
) (*entity.LedgerEntry, error) {
	client, err := clientRepo.GetForUpdate(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.Active() {
		return nil, domain.ErrClientNotFound
	}

	newBalance := client.Balance.Add(input.Debit).Sub(input.Credit)

	date := input.Date
	if date.IsZero() {
		date = now
	}
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Date:        date,
		Type:        input.Type,
		Description: input.Description,
		Debit:       input.Debit,
		Credit:      input.Credit,
		Balance:     newBalance,
		InvoiceID:   input.InvoiceID,
		Notes:       input.Notes,
		CreatedAt:   now,
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	for _, item := range input.Items {
		item.ID = uuid.New().String()
		item.EntryID = entry.ID
		if err := ledgerRepo.CreateItem(item); err != nil {
			return nil, err
		}
		entry.Items = append(entry.Items, item)
	}

	totalBusiness := client.TotalBusinessValue
	if input.Type == entity.EntryTypeSALE {
		totalBusiness = totalBusiness.Add(input.Debit)
	}
	if err := clientRepo.UpdateBalances(clientID, newBalance, totalBusiness, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetLedger devuelve las entradas del cliente más recientes primero, con items.
// from y to acotan opcionalmente por fecha de negocio.
func (uc *LedgerUseCase) GetLedger(ctx context.Context, clientID string, from, to *time.Time) ([]*entity.LedgerEntry, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledgerRepo.ListByClient(clientID, from, to)
}
