package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CreateInvoiceUseCase crea una factura, descuenta el stock por cada línea y
// registra la venta en el ledger del cliente, todo en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner    BillingTxRunner
	stockUC     StockUseCase
	ledgerUC    LedgerUseCase
	clientRepo  repository.ClientRepository
	itemRepo    repository.StockItemRepository
	invoiceRepo repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	stockUC StockUseCase,
	ledgerUC LedgerUseCase,
	clientRepo repository.ClientRepository,
	itemRepo repository.StockItemRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		stockUC:     stockUC,
		ledgerUC:    ledgerUC,
		clientRepo:  clientRepo,
		itemRepo:    itemRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreateInvoice valida, calcula totales y ejecuta la creación transaccional.
//
// Totales: subtotal = Σ(cantidad × precio); total = subtotal - descuento + impuesto;
// amountDue = total - amountPaid (sin clamp). Si amountPaid > total falla con
// ErrOverpayment antes de cualquier escritura.
//
// Dentro de la transacción: salida de stock por línea (si cualquiera falla por
// stock insuficiente se deshace todo), factura + líneas, y si amountDue > 0 una
// entrada SALE en el ledger con debit = total y credit = amountPaid (efecto
// neto +amountDue sobre el saldo).
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) || in.Tax.LessThan(decimal.Zero) || in.AmountPaid.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.Active() {
		return nil, domain.ErrClientNotFound
	}

	// Validar artículos y resolver precios (fuera de la tx, solo lectura)
	itemsByID := make(map[string]*entity.StockItem)
	for i := range in.Items {
		line := &in.Items[i]
		if line.StockItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.StockItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active() {
			return nil, domain.ErrNotFound
		}
		itemsByID[line.StockItemID] = item
		if line.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = item.WholesalePrice
		}
	}

	var subtotal decimal.Decimal
	for _, line := range in.Items {
		subtotal = subtotal.Add(line.Quantity.Mul(line.UnitPrice))
	}
	total := subtotal.Sub(in.Discount).Add(in.Tax)
	if total.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.AmountPaid.GreaterThan(total) {
		return nil, domain.ErrOverpayment
	}
	amountDue := total.Sub(in.AmountPaid)

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	invoiceID := uuid.New().String() // referencia de los movimientos de stock y la entrada del ledger
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("FAC-%d", now.Unix())
	}

	inv := &entity.Invoice{
		ID:         invoiceID,
		Number:     number,
		ClientID:   in.ClientID,
		Date:       date,
		Subtotal:   subtotal,
		Discount:   in.Discount,
		Tax:        in.Tax,
		Total:      total,
		AmountPaid: in.AmountPaid,
		AmountDue:  amountDue,
		Status:     entity.DeriveInvoiceStatus(total, in.AmountPaid),
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		clientRepo repository.ClientRepository,
		ledgerRepo repository.LedgerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Salida de stock por cada línea; cualquier fallo deshace todo
		for _, line := range in.Items {
			if err := uc.stockUC.RegisterOUTInTx(
				itemRepo, movRepo,
				line.StockItemID, line.Quantity,
				number, invoiceID, userID,
				now,
			); err != nil {
				return err
			}
		}

		// 2) Cabecera y líneas
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range in.Items {
			item := itemsByID[line.StockItemID]
			detail := &entity.InvoiceItem{
				ID:          uuid.New().String(),
				InvoiceID:   invoiceID,
				StockItemID: line.StockItemID,
				Description: item.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Subtotal:    line.Quantity.Mul(line.UnitPrice),
			}
			if err := invoiceRepo.CreateItem(detail); err != nil {
				return err
			}
			inv.Items = append(inv.Items, detail)
		}

		// 3) Venta a crédito: entrada SALE en el ledger (debit = total,
		// credit = lo pagado de contado; el saldo sube en amountDue)
		if amountDue.GreaterThan(decimal.Zero) {
			ledgerItems := make([]*entity.LedgerItem, 0, len(inv.Items))
			for _, detail := range inv.Items {
				ledgerItems = append(ledgerItems, &entity.LedgerItem{
					StockItemID: detail.StockItemID,
					Description: detail.Description,
					Quantity:    detail.Quantity,
					UnitPrice:   detail.UnitPrice,
				})
			}
			if _, err := uc.ledgerUC.AppendEntryInTx(clientRepo, ledgerRepo, in.ClientID, ledger.EntryInput{
				Date:        date,
				Type:        entity.EntryTypeSALE,
				Description: fmt.Sprintf("Venta factura #%s", number),
				Debit:       total,
				Credit:      in.AmountPaid,
				InvoiceID:   invoiceID,
				Items:       ledgerItems,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, client.Name), nil
}

func toInvoiceResponse(inv *entity.Invoice, clientName string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		ClientID:   inv.ClientID,
		ClientName: clientName,
		Date:       inv.Date,
		Subtotal:   inv.Subtotal,
		Discount:   inv.Discount,
		Tax:        inv.Tax,
		Total:      inv.Total,
		AmountPaid: inv.AmountPaid,
		AmountDue:  inv.AmountDue,
		Status:     inv.Status,
		Notes:      inv.Notes,
		Items:      make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
	}
	for _, d := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          d.ID,
			StockItemID: d.StockItemID,
			Description: d.Description,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
		})
	}
	return resp
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(inv.ClientID); client != nil {
		clientName = client.Name
	}
	return toInvoiceResponse(inv, clientName), nil
}

// ListInvoices lista facturas (opcionalmente por cliente).
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, clientID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var list []*entity.Invoice
	var err error
	if clientID != "" {
		list, err = uc.invoiceRepo.ListByClient(clientID, limit, offset)
	} else {
		list, err = uc.invoiceRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, ""))
	}
	return out, nil
}
