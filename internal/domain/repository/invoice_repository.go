package repository

import "github.com/jhoicas/mayorista-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la cabecera para aplicar un pago (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Invoice, error)
	// ListOpenByClientForUpdate devuelve las facturas abiertas (UNPAID/PARTIAL)
	// del cliente ordenadas por created_at ASC (la deuda más vieja primero),
	// con bloqueo de fila. El orden es contrato de la asignación FIFO.
	ListOpenByClientForUpdate(clientID string) ([]*entity.Invoice, error)
	// UpdatePayment persiste amount_paid, amount_due, status y updated_at.
	UpdatePayment(invoice *entity.Invoice) error
	ListByClient(clientID string, limit, offset int) ([]*entity.Invoice, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
}
