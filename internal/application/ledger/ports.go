package ledger

import (
	"context"

	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ledger atados a esa tx. Los seis pasos de AppendEntry
// (leer saldo, calcular, insertar entrada, insertar items, actualizar saldo,
// acumular total de negocio) persisten juntos o se deshacen juntos.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
