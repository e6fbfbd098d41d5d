package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RecordPaymentUseCase aplica un pago recibido sobre las facturas del cliente y
// registra la entrada PAYMENT en el ledger, todo en una sola transacción.
//
// Dos modos:
//   - dirigido: el pago va a una factura concreta; se aplica min(monto, saldo de
//     esa factura). El excedente NO se redirige a otras facturas: queda solo como
//     crédito en el ledger (comportamiento heredado, ver DESIGN.md).
//   - automático: se recorren las facturas abiertas de la más vieja a la más
//     nueva (created_at ASC) aplicando min(restante, saldo) hasta agotar el monto.
//
// En ambos modos el ledger recibe una única entrada PAYMENT con credit = monto
// completo: el saldo del cliente es agnóstico a la distribución por factura.
type RecordPaymentUseCase struct {
	txRunner   BillingTxRunner
	ledgerUC   LedgerUseCase
	clientRepo repository.ClientRepository
}

// NewRecordPaymentUseCase construye el caso de uso.
func NewRecordPaymentUseCase(txRunner BillingTxRunner, ledgerUC LedgerUseCase, clientRepo repository.ClientRepository) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{txRunner: txRunner, ledgerUC: ledgerUC, clientRepo: clientRepo}
}

// RecordPayment valida y ejecuta el registro transaccional del pago.
// amount <= 0 falla antes de cualquier mutación; cliente o factura objetivo
// inexistentes fallan sin tocar nada.
func (uc *RecordPaymentUseCase) RecordPayment(ctx context.Context, clientID string, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.Active() {
		return nil, domain.ErrClientNotFound
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	var allocations []dto.PaymentAllocationResponse
	var entry *entity.LedgerEntry

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.StockItemRepository,
		_ repository.StockMovementRepository,
		clientRepo repository.ClientRepository,
		ledgerRepo repository.LedgerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		var err error
		if in.TargetInvoiceID != "" {
			allocations, err = uc.applyTargeted(invoiceRepo, clientID, in.TargetInvoiceID, in.Amount, now)
		} else {
			allocations, err = uc.applyFIFO(invoiceRepo, clientID, in.Amount, now)
		}
		if err != nil {
			return err
		}

		// Entrada PAYMENT por el monto completo, independiente de la distribución
		description := in.Description
		if description == "" {
			description = "Pago recibido"
		}
		entry, err = uc.ledgerUC.AppendEntryInTx(clientRepo, ledgerRepo, clientID, ledger.EntryInput{
			Date:        date,
			Type:        entity.EntryTypePAYMENT,
			Description: description,
			Credit:      in.Amount,
			InvoiceID:   in.TargetInvoiceID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.RecordPaymentResponse{
		ClientID:    clientID,
		Amount:      in.Amount,
		NewBalance:  entry.Balance,
		Allocations: allocations,
	}, nil
}

// applyTargeted aplica min(monto, saldo) a una sola factura.
func (uc *RecordPaymentUseCase) applyTargeted(
	invoiceRepo repository.InvoiceRepository,
	clientID, invoiceID string,
	amount decimal.Decimal,
	now time.Time,
) ([]dto.PaymentAllocationResponse, error) {
	inv, err := invoiceRepo.GetForUpdate(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.ClientID != clientID {
		return nil, domain.ErrInvoiceNotFound
	}
	applied := decimal.Min(amount, inv.AmountDue)
	if applied.GreaterThan(decimal.Zero) {
		if err := applyToInvoice(invoiceRepo, inv, applied, now); err != nil {
			return nil, err
		}
	}
	return []dto.PaymentAllocationResponse{{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		Applied:       applied,
		AmountDue:     inv.AmountDue,
		Status:        inv.Status,
	}}, nil
}

// applyFIFO recorre las facturas abiertas de la más vieja a la más nueva y
// aplica min(restante, saldo) a cada una hasta agotar el monto. La deuda más
// vieja se retira primero: es política contractual, no detalle de implementación.
func (uc *RecordPaymentUseCase) applyFIFO(
	invoiceRepo repository.InvoiceRepository,
	clientID string,
	amount decimal.Decimal,
	now time.Time,
) ([]dto.PaymentAllocationResponse, error) {
	open, err := invoiceRepo.ListOpenByClientForUpdate(clientID)
	if err != nil {
		return nil, err
	}
	var allocations []dto.PaymentAllocationResponse
	remaining := amount
	for _, inv := range open {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		applied := decimal.Min(remaining, inv.AmountDue)
		if !applied.GreaterThan(decimal.Zero) {
			continue
		}
		if err := applyToInvoice(invoiceRepo, inv, applied, now); err != nil {
			return nil, err
		}
		remaining = remaining.Sub(applied)
		allocations = append(allocations, dto.PaymentAllocationResponse{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.Number,
			Applied:       applied,
			AmountDue:     inv.AmountDue,
			Status:        inv.Status,
		})
	}
	return allocations, nil
}

// applyToInvoice suma applied a amount_paid, recalcula amount_due y deriva el
// estado. amount_paid nunca decrece; PAID es terminal.
func applyToInvoice(invoiceRepo repository.InvoiceRepository, inv *entity.Invoice, applied decimal.Decimal, now time.Time) error {
	inv.AmountPaid = inv.AmountPaid.Add(applied)
	inv.AmountDue = inv.Total.Sub(inv.AmountPaid)
	inv.Status = entity.DeriveInvoiceStatus(inv.Total, inv.AmountPaid)
	inv.UpdatedAt = now
	if err := invoiceRepo.UpdatePayment(inv); err != nil {
		return fmt.Errorf("aplicar pago a factura %s: %w", inv.Number, err)
	}
	return nil
}
