package billing

import (
	"context"

	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

// InvoicePDFUseCase genera la representación gráfica de una factura guardada.
type InvoicePDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	generator   InvoicePDFGenerator
}

// NewInvoicePDFUseCase construye el caso de uso.
func NewInvoicePDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	generator InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{invoiceRepo: invoiceRepo, clientRepo: clientRepo, generator: generator}
}

// GeneratePDF carga la factura con sus líneas y el cliente, y renderiza el PDF.
func (uc *InvoicePDFUseCase) GeneratePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	return uc.generator.GenerateInvoicePDF(ctx, inv, client)
}
