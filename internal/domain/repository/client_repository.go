package repository

import (
	"time"

	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ClientRepository define el puerto de persistencia para clientes.
// Update nunca toca balance ni total_business_value: esos campos solo se
// mutan vía UpdateBalances dentro de la transacción de una entrada del ledger.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByPhone(phone string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	SoftDelete(id string, at time.Time) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Client, error)
	UpdateBalances(id string, balance, totalBusinessValue decimal.Decimal, at time.Time) error
}
