package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
)

// seedInvoice inserta una factura abierta directamente en el store, con
// created_at controlado para fijar el orden FIFO, y acumula la deuda en el
// saldo del cliente.
func seedInvoice(t *testing.T, f *billingFixture, id, number string, due string, createdAt time.Time) {
	t.Helper()
	total := dec(due)
	f.store.invoices[id] = &entity.Invoice{
		ID:         id,
		Number:     number,
		ClientID:   "cli-1",
		Date:       createdAt,
		Subtotal:   total,
		Total:      total,
		AmountPaid: decimal.Zero,
		AmountDue:  total,
		Status:     entity.InvoiceStatusUNPAID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	client := f.store.clients["cli-1"]
	client.Balance = client.Balance.Add(total)
}

var (
	day1 = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	day2 = time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	day3 = time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
)

// ──────────────────────────────────────────────────────────────────────────────
// Asignación FIFO (sin factura objetivo)
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el pago cubre la factura más vieja completa y parte de la siguiente.
// A (500, día 1) queda PAID; B (300, día 2) queda PARTIAL con 200 pendientes.
// El ledger recibe UNA sola entrada PAYMENT por el monto completo.
func TestRecordPayment_FIFOLaDeudaMasViejaPrimero(t *testing.T) {
	f := setupBilling(t)
	seedInvoice(t, f, "inv-A", "FAC-A", "500", day1)
	seedInvoice(t, f, "inv-B", "FAC-B", "300", day2)

	resp, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount: dec("600"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Allocations, 2)
	assert.Equal(t, "inv-A", resp.Allocations[0].InvoiceID, "la factura más vieja se paga primero")
	assert.True(t, dec("500").Equal(resp.Allocations[0].Applied))
	assert.Equal(t, entity.InvoiceStatusPAID, resp.Allocations[0].Status)
	assert.Equal(t, "inv-B", resp.Allocations[1].InvoiceID)
	assert.True(t, dec("100").Equal(resp.Allocations[1].Applied))
	assert.Equal(t, entity.InvoiceStatusPARTIAL, resp.Allocations[1].Status)

	invA := f.store.invoices["inv-A"]
	invB := f.store.invoices["inv-B"]
	assert.Equal(t, entity.InvoiceStatusPAID, invA.Status)
	assert.True(t, invA.AmountDue.IsZero())
	assert.Equal(t, entity.InvoiceStatusPARTIAL, invB.Status)
	assert.True(t, dec("200").Equal(invB.AmountDue), "a B le deben quedar 200 pendientes")

	// Una sola entrada PAYMENT con el monto completo; saldo 800-600=200
	require.Len(t, f.store.entries, 1)
	entry := f.store.entries[0]
	assert.Equal(t, entity.EntryTypePAYMENT, entry.Type)
	assert.True(t, dec("600").Equal(entry.Credit))
	assert.True(t, dec("200").Equal(resp.NewBalance), "saldo final 800-600=200, quedó %s", resp.NewBalance)
	assert.True(t, dec("200").Equal(f.store.clients["cli-1"].Balance))
}

// Caso 1b: el recorrido se detiene al agotar el monto; la tercera factura no se toca.
func TestRecordPayment_FIFOParaAlAgotarElMonto(t *testing.T) {
	f := setupBilling(t)
	seedInvoice(t, f, "inv-A", "FAC-A", "100", day1)
	seedInvoice(t, f, "inv-B", "FAC-B", "100", day2)
	seedInvoice(t, f, "inv-C", "FAC-C", "100", day3)

	resp, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount: dec("150"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Allocations, 2, "la tercera factura no debe aparecer")
	assert.Equal(t, entity.InvoiceStatusPAID, f.store.invoices["inv-A"].Status)
	assert.True(t, dec("50").Equal(f.store.invoices["inv-B"].AmountPaid))
	assert.Equal(t, entity.InvoiceStatusUNPAID, f.store.invoices["inv-C"].Status,
		"la factura C no debe tocarse")
}

// Caso 2: pago sin facturas abiertas. No hay asignaciones pero el ledger sí
// registra el crédito (saldo a favor).
func TestRecordPayment_SinFacturasAbiertasQuedaCredito(t *testing.T) {
	f := setupBilling(t)

	resp, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount: dec("250"),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Allocations)
	assert.True(t, dec("-250").Equal(resp.NewBalance),
		"sin deuda el pago queda como saldo a favor (balance negativo)")
	require.Len(t, f.store.entries, 1)
	assert.True(t, dec("250").Equal(f.store.entries[0].Credit))
}

// Caso 2b: el pago excede la deuda total. Las facturas quedan PAID y el
// excedente queda como crédito en el saldo.
func TestRecordPayment_ExcedenteQuedaEnSaldo(t *testing.T) {
	f := setupBilling(t)
	seedInvoice(t, f, "inv-A", "FAC-A", "300", day1)

	resp, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount: dec("400"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPAID, f.store.invoices["inv-A"].Status)
	assert.True(t, dec("-100").Equal(resp.NewBalance),
		"el excedente de 100 queda como saldo a favor, quedó %s", resp.NewBalance)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pago dirigido (con factura objetivo)
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: el pago dirigido va solo a la factura indicada aunque exista una más
// vieja con deuda.
func TestRecordPayment_DirigidoIgnoraLaMasVieja(t *testing.T) {
	f := setupBilling(t)
	seedInvoice(t, f, "inv-A", "FAC-A", "500", day1)
	seedInvoice(t, f, "inv-B", "FAC-B", "300", day2)

	resp, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount:          dec("300"),
		TargetInvoiceID: "inv-B",
	})
	require.NoError(t, err)

	require.Len(t, resp.Allocations, 1)
	assert.Equal(t, "inv-B", resp.Allocations[0].InvoiceID)
	assert.Equal(t, entity.InvoiceStatusPAID, f.store.invoices["inv-B"].Status)
	assert.Equal(t, entity.InvoiceStatusUNPAID, f.store.invoices["inv-A"].Status,
		"la factura más vieja no debe tocarse en un pago dirigido")
	assert.True(t, dec("500").Equal(f.store.clients["cli-1"].Balance), "saldo 800-300=500")
}

// Caso 3b: pago dirigido mayor al saldo de la factura. A la factura solo se
// aplica su saldo; el excedente NO se redirige a otras facturas abiertas,
// queda como crédito en el saldo del cliente.
func TestRecordPayment_DirigidoNoRedirigeExcedente(t *testing.T) {
	f := setupBilling(t)
	seedInvoice(t, f, "inv-A", "FAC-A", "500", day1)
	seedInvoice(t, f, "inv-B", "FAC-B", "300", day2)

	resp, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount:          dec("450"),
		TargetInvoiceID: "inv-B",
	})
	require.NoError(t, err)

	require.Len(t, resp.Allocations, 1)
	assert.True(t, dec("300").Equal(resp.Allocations[0].Applied),
		"a la factura objetivo solo se aplica su saldo")
	assert.Equal(t, entity.InvoiceStatusPAID, f.store.invoices["inv-B"].Status)
	assert.Equal(t, entity.InvoiceStatusUNPAID, f.store.invoices["inv-A"].Status,
		"el excedente no debe ir a parar a la factura A")
	// Ledger con el monto completo: 800 - 450 = 350
	assert.True(t, dec("350").Equal(resp.NewBalance))
}

// Caso 4: factura objetivo inexistente o de otro cliente → ErrInvoiceNotFound
// sin tocar nada.
func TestRecordPayment_FacturaObjetivoInvalida(t *testing.T) {
	f := setupBilling(t)
	seedInvoice(t, f, "inv-A", "FAC-A", "500", day1)

	_, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount:          dec("100"),
		TargetInvoiceID: "no-existe",
	})
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	// Factura de otro cliente
	otro := &entity.Client{ID: "cli-2", Name: "Otro", Phone: "3009999999",
		Balance: decimal.Zero, TotalBusinessValue: decimal.Zero}
	f.store.clients["cli-2"] = otro
	f.store.invoices["inv-X"] = &entity.Invoice{
		ID: "inv-X", Number: "FAC-X", ClientID: "cli-2",
		Total: dec("100"), AmountDue: dec("100"), Status: entity.InvoiceStatusUNPAID,
		CreatedAt: day1,
	}
	_, err = f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount:          dec("100"),
		TargetInvoiceID: "inv-X",
	})
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound,
		"una factura de otro cliente debe tratarse como inexistente")

	assert.Empty(t, f.store.entries, "no debe quedar ninguna entrada en el ledger")
	assert.True(t, dec("500").Equal(f.store.clients["cli-1"].Balance))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: monto cero o negativo y cliente inexistente se rechazan antes de la tx.
func TestRecordPayment_EntradasInvalidas(t *testing.T) {
	f := setupBilling(t)
	ctx := context.Background()

	_, err := f.paymentUC.RecordPayment(ctx, "cli-1", dto.RecordPaymentRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero debe rechazarse")

	_, err = f.paymentUC.RecordPayment(ctx, "cli-1", dto.RecordPaymentRequest{Amount: dec("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto negativo debe rechazarse")

	_, err = f.paymentUC.RecordPayment(ctx, "no-existe", dto.RecordPaymentRequest{Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	assert.Empty(t, f.store.entries)
}

// Caso 6: dos pagos consecutivos sobre la misma factura. amount_paid acumula,
// nunca decrece, y PAID es terminal (la factura deja de aparecer como abierta).
func TestRecordPayment_PagosConsecutivosAcumulan(t *testing.T) {
	f := setupBilling(t)
	seedInvoice(t, f, "inv-A", "FAC-A", "500", day1)

	_, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount: dec("200"),
	})
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(f.store.invoices["inv-A"].AmountPaid))
	assert.Equal(t, entity.InvoiceStatusPARTIAL, f.store.invoices["inv-A"].Status)

	_, err = f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount: dec("300"),
	})
	require.NoError(t, err)
	assert.True(t, dec("500").Equal(f.store.invoices["inv-A"].AmountPaid))
	assert.Equal(t, entity.InvoiceStatusPAID, f.store.invoices["inv-A"].Status)

	// Un tercer pago ya no encuentra facturas abiertas
	resp, err := f.paymentUC.RecordPayment(context.Background(), "cli-1", dto.RecordPaymentRequest{
		Amount: dec("50"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Allocations, "una factura PAID no vuelve a recibir pagos")
	assert.True(t, dec("500").Equal(f.store.invoices["inv-A"].AmountPaid),
		"amount_paid nunca decrece ni crece más allá del total")
}
