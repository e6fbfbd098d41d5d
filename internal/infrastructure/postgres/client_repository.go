package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, phone, email, address, notes,
	balance, total_business_value, created_at, updated_at, deleted_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, email, address, notes, balance, total_business_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, nullIfEmpty(client.Email), nullIfEmpty(client.Address),
		nullIfEmpty(client.Notes), client.Balance, client.TotalBusinessValue,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var email, address, notes *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &email, &address, &notes,
		&c.Balance, &c.TotalBusinessValue, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Email = derefStr(email)
	c.Address = derefStr(address)
	c.Notes = derefStr(notes)
	return &c, nil
}

// GetByID obtiene un cliente por ID (incluye borrados; el caller decide).
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByPhone obtiene un cliente activo por teléfono (el teléfono es único).
func (r *ClientRepo) GetByPhone(phone string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE phone = $1 AND deleted_at IS NULL`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by phone: %w", err)
	}
	return c, nil
}

// List lista clientes activos ordenados por nombre, con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients WHERE deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de perfil. El SET no incluye balance ni
// total_business_value: esos campos solo los escribe UpdateBalances.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, phone = $3, email = $4, address = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, nullIfEmpty(client.Email),
		nullIfEmpty(client.Address), nullIfEmpty(client.Notes), client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// SoftDelete marca el cliente como borrado (deleted_at).
func (r *ClientRepo) SoftDelete(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el cliente y bloquea la fila para update (SELECT FOR UPDATE).
// Serializa las entradas concurrentes del ledger sobre el mismo cliente.
func (r *ClientRepo) GetForUpdate(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 FOR UPDATE`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client for update: %w", err)
	}
	return c, nil
}

// UpdateBalances escribe el saldo y el acumulado de negocio (solo dentro de la
// transacción de una entrada del ledger).
func (r *ClientRepo) UpdateBalances(id string, balance, totalBusinessValue decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET balance = $2, total_business_value = $3, updated_at = $4 WHERE id = $1`,
		id, balance, totalBusinessValue, at)
	if err != nil {
		return fmt.Errorf("update client balances: %w", err)
	}
	return nil
}
