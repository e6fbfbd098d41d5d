package billing

import (
	"context"
	"time"

	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillingTxRunner ejecuta una función dentro de una transacción con todos los
// repositorios que la facturación necesita: la salida de stock por línea, la
// factura con sus items y la entrada SALE del ledger caen en el mismo
// Commit/Rollback (sin facturas parciales ni descuentos de stock huérfanos).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		clientRepo repository.ClientRepository,
		ledgerRepo repository.LedgerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// StockUseCase puerto hacia el motor de stock para descontar inventario dentro
// de la transacción de la factura.
type StockUseCase interface {
	RegisterOUTInTx(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		stockItemID string,
		quantity decimal.Decimal,
		invoiceNumber, invoiceID, performedBy string,
		now time.Time,
	) error
}

// LedgerUseCase puerto hacia el ledger de clientes para registrar la entrada
// SALE/PAYMENT en la misma transacción de la factura o del pago.
type LedgerUseCase interface {
	AppendEntryInTx(
		clientRepo repository.ClientRepository,
		ledgerRepo repository.LedgerRepository,
		clientID string,
		input ledger.EntryInput,
		now time.Time,
	) (*entity.LedgerEntry, error)
}

// InvoicePDFGenerator renderiza la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, client *entity.Client) ([]byte, error)
}
